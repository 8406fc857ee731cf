package fileio

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/docs/a.txt", "hello")
	m.Fail("read", "/docs/locked.txt", fs.ErrPermission)
	m.AddFile("/docs/locked.txt", "secret")

	_, err := m.ReadFile("/docs/missing.txt")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.ReadFile("/docs/locked.txt")
	assert.Equal(t, KindPermission, KindOf(err))

	_, err = m.ReadDir("/docs/a.txt")
	assert.Equal(t, KindNotDirectory, KindOf(err))

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "readdir", fe.Op)
	assert.Equal(t, KindIO, KindOf(errors.New("disk on fire")))
}

func TestMemFS_ReadDirSorted(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/root/b.txt", "")
	m.AddFile("/root/a.txt", "")
	m.AddFile("/root/sub/c.txt", "")
	m.AddFile("/root/A.txt", "")

	entries, err := m.ReadDir("/root")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"A.txt", "a.txt", "b.txt", "sub"}, names)
	assert.True(t, entries[3].IsDir)
	assert.Equal(t, "/root/sub", entries[3].Path)
}

func TestTextIO_Decode(t *testing.T) {
	tio, err := NewTextIO(NewMemFS(), "", lineending.Unspecified)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", tio.Charset())

	got, err := tio.Decode([]byte("\xEF\xBB\xBFпривет"))
	require.NoError(t, err)
	assert.Equal(t, "привет", got)

	// "hi" in UTF-16LE with BOM
	got, err = tio.Decode([]byte{0xFF, 0xFE, 'h', 0, 'i', 0})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = tio.Decode([]byte{'a', 0xC3, 0x28})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTextIO_Windows1251RoundTrip(t *testing.T) {
	m := NewMemFS()
	m.MkdirAll("/d")
	tio, err := NewTextIO(m, "windows-1251", lineending.Windows)
	require.NoError(t, err)

	require.NoError(t, tio.WriteAll("/d/ru.txt", "да\nнет"))
	raw, _ := m.Content("/d/ru.txt")
	assert.Equal(t, "\xe4\xe0\r\n\xed\xe5\xf2", raw)

	text, err := tio.ReadAll("/d/ru.txt")
	require.NoError(t, err)
	assert.Equal(t, "да\r\nнет", text)
}

func TestTextIO_KeepsBOM(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		bom  BOM
		want string
	}{
		{"utf-8", "\xEF\xBB\xBFab", BOMUTF8, "\xEF\xBB\xBFxb"},
		{"utf-16le", "\xFF\xFEa\x00b\x00", BOMUTF16LE, "\xFF\xFEx\x00b\x00"},
		{"utf-16be", "\xFE\xFF\x00a\x00b", BOMUTF16BE, "\xFE\xFF\x00x\x00b"},
		{"none", "ab", NoBOM, "xb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemFS()
			m.AddFile("/f.txt", tt.raw)
			// The configured charset only applies to files without a BOM
			tio, err := NewTextIO(m, "windows-1251", lineending.Unspecified)
			require.NoError(t, err)

			text, bom, err := tio.ReadAllBOM("/f.txt")
			require.NoError(t, err)
			assert.Equal(t, "ab", text)
			assert.Equal(t, tt.bom, bom)

			require.NoError(t, tio.RewriteBOM("/f.txt", "x"+text[1:], bom))
			raw, _ := m.Content("/f.txt")
			assert.Equal(t, tt.want, raw)
		})
	}
}

func TestTextIO_WriteAllBOMAppliesLineEnding(t *testing.T) {
	m := NewMemFS()
	m.MkdirAll("/d")
	tio, err := NewTextIO(m, "utf-8", lineending.Windows)
	require.NoError(t, err)

	require.NoError(t, tio.WriteAllBOM("/d/f.txt", "a\nb", BOMUTF16LE))
	raw, _ := m.Content("/d/f.txt")
	assert.Equal(t, "\xFF\xFEa\x00\r\x00\n\x00b\x00", raw)
}

func TestTextIO_EncodeFailure(t *testing.T) {
	m := NewMemFS()
	m.MkdirAll("/d")
	tio, err := NewTextIO(m, "windows-1252", lineending.Unspecified)
	require.NoError(t, err)

	err = tio.WriteAll("/d/x.txt", "日本")
	assert.Equal(t, KindEncode, KindOf(err))
	_, exists := m.Content("/d/x.txt")
	assert.False(t, exists)
}

func TestNewTextIO_Unsupported(t *testing.T) {
	_, err := NewTextIO(NewMemFS(), "klingon-8", lineending.Unix)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestTextIO_ScanLines(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/f.txt", "one\r\ntwo\rthree\nfour")
	tio, err := NewTextIO(m, "utf-8", lineending.Unspecified)
	require.NoError(t, err)

	var lines []string
	err = tio.ScanLines(context.Background(), "/f.txt", func(n int, line string) error {
		assert.Equal(t, len(lines)+1, n)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four"}, lines)
}

func TestTextIO_ScanLinesCancelled(t *testing.T) {
	m := NewMemFS()
	m.AddFile("/f.txt", "a\nb\nc\nd")
	tio, err := NewTextIO(m, "utf-8", lineending.Unspecified)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	seen := 0
	err = tio.ScanLines(ctx, "/f.txt", func(n int, line string) error {
		seen++
		if n == 2 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, seen)
}

func TestLooksBinary(t *testing.T) {
	assert.False(t, LooksBinary([]byte("plain text\n")))
	assert.False(t, LooksBinary(nil))
	assert.True(t, LooksBinary([]byte{0x7F, 'E', 'L', 'F', 0, 0, 0, 1}))
	assert.False(t, LooksBinary([]byte{0xFF, 0xFE, 'h', 0, 'i', 0}))
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))

	var fsys OSFS
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, filepath.Join(dir, "b.txt"), entries[1].Path)

	require.NoError(t, fsys.WriteFile(entries[1].Path, []byte("bb")))
	info, err := os.Stat(entries[1].Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = fsys.ReadFile(filepath.Join(dir, "nope"))
	assert.Equal(t, KindNotFound, KindOf(err))
}
