package batch

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextIO(t *testing.T, m *fileio.MemFS) *fileio.TextIO {
	t.Helper()
	tio, err := fileio.NewTextIO(m, "utf-8", lineending.Unspecified)
	require.NoError(t, err)
	return tio
}

func sampleTree() *fileio.MemFS {
	m := fileio.NewMemFS()
	m.AddFile("/proj/b.txt", "nothing here\nQuick start\n")
	m.AddFile("/proj/a.txt", "the quick fox\nslow\nquick quick\n")
	m.AddFile("/proj/sub/c.md", "  QUICK and dirty  ")
	m.AddFile("/proj/.git/config", "quick")
	m.AddBytes("/proj/logo.png", []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 0, 'q', 'u', 'i', 'c', 'k'})
	return m
}

func TestWalk_Search(t *testing.T) {
	m := sampleTree()
	tio := newTextIO(t, m)
	var hits []Hit
	v := &SearchVisitor{
		Matcher: find.MustCompile("quick", true),
		Text:    tio,
		OnHit:   func(h Hit) { hits = append(hits, h) },
	}
	rec := &Recorder{}

	res := NewWalker(m, DefaultSkipDirs).Walk(context.Background(), "/proj", v, rec)

	require.Equal(t, Completed, res.Outcome)
	require.NoError(t, res.Err)
	assert.Equal(t, 4, res.Counters.FilesScanned) // a, b, logo (skipped), sub/c
	assert.Equal(t, 4, res.Counters.MatchesFound)

	var where []string
	for _, h := range hits {
		where = append(where, fmt.Sprintf("%s:%d", h.Path, h.Line))
	}
	assert.Equal(t, []string{"/proj/a.txt:1", "/proj/a.txt:3", "/proj/b.txt:2", "/proj/sub/c.md:1"}, where)
	assert.Equal(t, "QUICK and dirty", hits[3].Preview())
	assert.Len(t, hits[1].Spans, 2)

	final, ok := rec.Result()
	require.True(t, ok)
	assert.Equal(t, res, final)
	assert.NotEmpty(t, rec.Updates())
}

func TestWalk_SearchCaseSensitive(t *testing.T) {
	m := sampleTree()
	v := &SearchVisitor{Matcher: find.MustCompile("quick", false), Text: newTextIO(t, m)}
	res := NewWalker(m, DefaultSkipDirs).Walk(context.Background(), "/proj", v, nil)
	assert.Equal(t, 2, res.Counters.MatchesFound)
}

func TestWalk_Replace(t *testing.T) {
	m := sampleTree()
	v := &ReplaceVisitor{
		Matcher:      find.MustCompile("quick", true),
		Replacement:  "$0",
		Text:         newTextIO(t, m),
		BackupSuffix: DefaultBackupSuffix,
	}
	rec := &Recorder{}
	res := NewWalker(m, DefaultSkipDirs).Walk(context.Background(), "/proj", v, rec)

	require.Equal(t, Completed, res.Outcome)
	assert.Equal(t, 3, res.Counters.FilesChanged)
	assert.Equal(t, 5, res.Counters.ReplacementsTotal)

	got, _ := m.Content("/proj/a.txt")
	assert.Equal(t, "the $0 fox\nslow\n$0 $0\n", got)
	backup, ok := m.Content("/proj/a.txt.bak")
	require.True(t, ok)
	assert.Equal(t, "the quick fox\nslow\nquick quick\n", backup)

	// Untouched: no match, skipped directory, binary file
	_, ok = m.Content("/proj/.git/config.bak")
	assert.False(t, ok)
	cfg, _ := m.Content("/proj/.git/config")
	assert.Equal(t, "quick", cfg)

	// Every backup is written before its original is overwritten
	writes := m.Writes()
	for _, p := range []string{"/proj/a.txt", "/proj/b.txt", "/proj/sub/c.md"} {
		bak := indexOf(writes, p+".bak")
		orig := indexOf(writes, p)
		require.GreaterOrEqual(t, bak, 0, p)
		assert.Less(t, bak, orig, p)
	}
}

func TestWalk_ReplaceBackupFailureDoesNotBlock(t *testing.T) {
	m := fileio.NewMemFS()
	m.AddFile("/d/x.txt", "old")
	m.Fail("write", "/d/x.txt.bak", fs.ErrPermission)

	v := &ReplaceVisitor{Matcher: find.MustCompile("old", false), Replacement: "new", Text: newTextIO(t, m), BackupSuffix: ".bak"}
	res := NewWalker(m, nil).Walk(context.Background(), "/d", v, nil)

	assert.Equal(t, 1, res.Counters.FilesChanged)
	got, _ := m.Content("/d/x.txt")
	assert.Equal(t, "new", got)
}

func TestWalk_ReplaceKeepsLineEndings(t *testing.T) {
	m := fileio.NewMemFS()
	m.AddFile("/d/win.txt", "a\r\nb\r\n")
	tio, err := fileio.NewTextIO(m, "utf-8", lineending.Unix)
	require.NoError(t, err)

	v := &ReplaceVisitor{Matcher: find.MustCompile("b", false), Replacement: "c", Text: tio}
	NewWalker(m, nil).Walk(context.Background(), "/d", v, nil)

	got, _ := m.Content("/d/win.txt")
	assert.Equal(t, "a\r\nc\r\n", got)
}

func TestWalk_ReplaceKeepsBOM(t *testing.T) {
	m := fileio.NewMemFS()
	m.AddBytes("/d/le.txt", []byte{0xFF, 0xFE, 'a', 0, 'b', 0})
	m.AddBytes("/d/u8.txt", []byte{0xEF, 0xBB, 0xBF, 'a', 'b'})

	v := &ReplaceVisitor{Matcher: find.MustCompile("a", false), Replacement: "x", Text: newTextIO(t, m)}
	res := NewWalker(m, nil).Walk(context.Background(), "/d", v, nil)
	require.Equal(t, Completed, res.Outcome)
	assert.Equal(t, 2, res.Counters.FilesChanged)

	le, _ := m.Content("/d/le.txt")
	assert.Equal(t, "\xFF\xFEx\x00b\x00", le)
	u8, _ := m.Content("/d/u8.txt")
	assert.Equal(t, "\xEF\xBB\xBFxb", u8)
}

func TestWalk_PerFileErrorsAreSwallowed(t *testing.T) {
	m := fileio.NewMemFS()
	m.AddFile("/d/1.txt", "hit")
	m.AddFile("/d/2.txt", "hit")
	m.AddBytes("/d/3.txt", []byte("hit \xff\xfe broken"))
	m.AddFile("/d/4.txt", "hit")
	m.AddFile("/d/locked/5.txt", "hit")
	m.Fail("open", "/d/2.txt", fs.ErrPermission)
	m.Fail("readdir", "/d/locked", fs.ErrPermission)

	v := &SearchVisitor{Matcher: find.MustCompile("hit", false), Text: newTextIO(t, m)}
	res := NewWalker(m, nil).Walk(context.Background(), "/d", v, nil)

	assert.Equal(t, Completed, res.Outcome)
	assert.Equal(t, 4, res.Counters.FilesScanned)
	// 2.txt cannot be opened, 3.txt is not valid UTF-8, locked/ cannot be listed
	assert.Equal(t, 2, res.Counters.MatchesFound)
}

func TestWalk_RootFailure(t *testing.T) {
	m := sampleTree()
	v := &SearchVisitor{Matcher: find.MustCompile("x", false), Text: newTextIO(t, m)}
	w := NewWalker(m, nil)

	res := w.Walk(context.Background(), "/missing", v, nil)
	assert.Equal(t, Failed, res.Outcome)
	assert.Equal(t, fileio.KindNotFound, fileio.KindOf(res.Err))
	assert.Equal(t, Counters{}, res.Counters)

	res = w.Walk(context.Background(), "/proj/a.txt", v, nil)
	assert.Equal(t, Failed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrRootNotDirectory)

	m.Fail("readdir", "/proj", fs.ErrPermission)
	res = w.Walk(context.Background(), "/proj", v, nil)
	assert.Equal(t, Failed, res.Outcome)
	assert.Equal(t, fileio.KindPermission, fileio.KindOf(res.Err))
	assert.Contains(t, res.String(), "failed")
}

func TestWalk_CancelAfterTenFiles(t *testing.T) {
	m := fileio.NewMemFS()
	for i := 0; i < 100; i++ {
		m.AddFile(fmt.Sprintf("/tree/d%d/f%03d.txt", i%7, i), "needle\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := SinkFuncs{OnProgress: func(c Counters) {
		if c.FilesScanned == 10 {
			cancel()
		}
	}}
	v := &ReplaceVisitor{Matcher: find.MustCompile("needle", false), Replacement: "pin", Text: newTextIO(t, m)}

	res := NewWalker(m, nil).Walk(ctx, "/tree", v, sink)

	assert.Equal(t, Cancelled, res.Outcome)
	assert.NoError(t, res.Err)
	assert.Equal(t, 10, res.Counters.FilesScanned)
	assert.Equal(t, 10, res.Counters.FilesChanged)
	assert.Len(t, m.Writes(), 10, "no file past the cancellation point is touched")
}

func TestWalk_CancelInsideFile(t *testing.T) {
	m := fileio.NewMemFS()
	m.AddFile("/d/big.txt", strings.Repeat("x hit\n", 1000))
	m.AddFile("/d/z.txt", "hit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v := &SearchVisitor{
		Matcher: find.MustCompile("hit", false),
		Text:    newTextIO(t, m),
		OnHit: func(h Hit) {
			if h.Line == 3 {
				cancel()
			}
		},
	}
	res := NewWalker(m, nil).Walk(ctx, "/d", v, nil)

	assert.Equal(t, Cancelled, res.Outcome)
	assert.Equal(t, 3, res.Counters.MatchesFound)
	assert.Equal(t, 0, res.Counters.FilesScanned)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
