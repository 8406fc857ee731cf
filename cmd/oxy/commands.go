package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/SEPLEMBER/Oxy-test/internal/batch"
	"github.com/SEPLEMBER/Oxy-test/internal/config"
	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/core/linediff"
	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/statusbar"
	"github.com/SEPLEMBER/Oxy-test/internal/store"
	"github.com/SEPLEMBER/Oxy-test/internal/tui"
)

var (
	errUsage   = errors.New("usage")
	errNoMatch = errors.New("no match")
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"diff", "compare two files line by line", cmdDiff},
	{"patch", "apply a patch made by diff -patch", cmdPatch},
	{"search", "search every file under a directory", cmdSearch},
	{"replace", "replace in every file under a directory", cmdReplace},
	{"find", "list the matches in one file", cmdFind},
	{"subst", "replace all matches in one file, undoably", cmdSubst},
	{"undo", "revert the last subst on a file", cmdUndo},
	{"redo", "reapply an undone subst", cmdRedo},
	{"normalize", "convert a file's line endings", cmdNormalize},
	{"stats", "print line, word and character counts", cmdStats},
	{"settings", "show or change stored settings", cmdSettings},
	{"recent", "list recently opened files", cmdRecent},
	{"queries", "list or clear remembered search queries", cmdQueries},
	{"themes", "list viewer themes", cmdThemes},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// flagSet creates the flag set of one command.
func (a *app) flagSet(name, operands string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: %s %s %s\n", config.AppName, name, operands)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and checks that between lo and hi operands remain.
func parse(fs *flag.FlagSet, args []string, lo, hi int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errUsage
	}
	if n := fs.NArg(); n < lo || n > hi {
		fs.Usage()
		return nil, errUsage
	}
	return fs.Args(), nil
}

func cmdDiff(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("diff", "[-view | -patch | -side [-width N]] A B")
	view := fs.Bool("view", false, "Open the side-by-side viewer")
	patch := fs.Bool("patch", false, "Print a patch turning A into B")
	side := fs.Bool("side", false, "Print two columns")
	width := fs.Int("width", 0, "Total width for -side (default: terminal width or 120)")
	rest, err := parse(fs, args, 2, 2)
	if err != nil {
		return err
	}

	tio, err := a.textIO()
	if err != nil {
		return err
	}
	left, err := tio.ReadAll(rest[0])
	if err != nil {
		return err
	}
	right, err := tio.ReadAll(rest[1])
	if err != nil {
		return err
	}

	if *patch {
		a.printf("%s", linediff.MakePatch(left, right))
		return nil
	}

	rows := linediff.DiffText(left, right)
	sum := linediff.Summarize(rows)
	switch {
	case *view:
		return a.view(ctx, rest[0], rest[1], rows)
	case *side:
		w := *width
		if w <= 0 {
			w = termWidth(a.stdout, 120)
		}
		for _, line := range linediff.SideBySide(rows, w) {
			a.printf("%s\n", line)
		}
	default:
		if err := linediff.FormatRows(a.stdout, rows); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.stderr, "%d equal, %d deleted, %d inserted\n", sum.Equal, sum.Deleted, sum.Inserted)
	if !sum.Identical() {
		return errDifferent
	}
	return nil
}

func (a *app) view(ctx context.Context, leftName, rightName string, rows []linediff.Row) error {
	themes := a.themes()
	ui, err := tui.New(themes.Current())
	if err != nil {
		return err
	}
	defer ui.Close()
	return tui.NewDiffView(leftName, rightName, rows, themes).Run(ctx, ui)
}

func cmdPatch(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("patch", "[-force] FILE PATCHFILE")
	force := fs.Bool("force", false, "Write the result even when some hunks fail")
	rest, err := parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	file, patchFile := rest[0], rest[1]

	tio, err := a.textIO()
	if err != nil {
		return err
	}
	text, bom, err := tio.ReadAllBOM(file)
	if err != nil {
		return err
	}
	patch, err := a.fsys.ReadFile(patchFile)
	if err != nil {
		return err
	}
	out, applied, err := linediff.ApplyPatch(text, string(patch))
	if err != nil {
		return err
	}
	failed := 0
	for _, ok := range applied {
		if !ok {
			failed++
		}
	}
	if failed > 0 && !*force {
		return fmt.Errorf("%d of %d hunk(s) did not apply; %s left unchanged", failed, len(applied), file)
	}
	if err := tio.WriteAllBOM(file, out, bom); err != nil {
		return err
	}
	a.printf("%s: applied %d of %d hunk(s)\n", file, len(applied)-failed, len(applied))
	return nil
}

func cmdSearch(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("search", "[-i] DIR QUERY")
	ci := fs.Bool("i", a.cfg.Editor.CaseInsensitive, "Ignore case")
	rest, err := parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	m, err := find.Compile(rest[1], *ci)
	if err != nil {
		return err
	}
	tio, err := a.textIO()
	if err != nil {
		return err
	}
	v := &batch.SearchVisitor{
		Matcher: m,
		Text:    tio,
		OnHit: func(h batch.Hit) {
			a.printf("%s:%d: %s\n", h.Path, h.Line, h.Preview())
		},
	}
	a.rememberQuery(rest[1])
	res, err := a.walk(ctx, rest[0], v)
	if err == nil && res.Counters.MatchesFound == 0 {
		return errNoMatch
	}
	return err
}

func cmdReplace(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("replace", "[-i] DIR QUERY REPLACEMENT")
	ci := fs.Bool("i", a.cfg.Editor.CaseInsensitive, "Ignore case")
	rest, err := parse(fs, args, 3, 3)
	if err != nil {
		return err
	}
	m, err := find.Compile(rest[1], *ci)
	if err != nil {
		return err
	}
	tio, err := a.textIO()
	if err != nil {
		return err
	}
	v := &batch.ReplaceVisitor{
		Matcher:      m,
		Replacement:  rest[2],
		Text:         tio,
		BackupSuffix: a.cfg.Batch.BackupSuffix,
	}
	a.rememberQuery(rest[1])
	_, err = a.walk(ctx, rest[0], v)
	return err
}

// rememberQuery feeds the search suggestions; a missing database only
// costs the suggestion.
func (a *app) rememberQuery(query string) {
	db, err := a.store()
	if err != nil {
		return
	}
	if err := db.AddQuery(query); err != nil {
		logger.Warnf("Recording query: %v", err)
	}
}

// walk runs one batch job and prints its result. Progress is shown live
// when stderr is a terminal.
func (a *app) walk(ctx context.Context, root string, v batch.Visitor) (batch.Result, error) {
	w := batch.NewWalker(a.fsys, a.cfg.Batch.SkipDirs)
	w.SkipBinary = a.cfg.Batch.SkipBinary

	if _, live := terminal(a.stderr); live {
		a.events.Subscribe(event.TypeJobProgress, func(e event.Event) bool {
			p := e.Data.(event.JobProgressData)
			fmt.Fprintf(a.stderr, "\rscanned %d, matches %d, changed %d", p.FilesScanned, p.MatchesFound, p.FilesChanged)
			return false
		})
	}
	a.events.Subscribe(event.TypeJobFinished, func(e event.Event) bool {
		fin := e.Data.(event.JobFinishedData)
		logger.Debugf("Job %s finished: %s", fin.JobID, fin.Summary)
		return false
	})

	var res batch.Result
	var runner batch.Runner
	runner.Start(ctx, func(ctx context.Context, id string) {
		res = w.WalkJob(ctx, id, root, v, batch.EventSink(a.events, id))
	})
	runner.Wait()

	if _, live := terminal(a.stderr); live {
		fmt.Fprintln(a.stderr)
	}
	fmt.Fprintln(a.stderr, res)
	switch res.Outcome {
	case batch.Failed:
		return res, res.Err
	case batch.Cancelled:
		return res, context.Canceled
	}
	return res, nil
}

func cmdFind(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("find", "[-i] FILE QUERY")
	ci := fs.Bool("i", a.cfg.Editor.CaseInsensitive, "Ignore case")
	rest, err := parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	if _, err := find.Compile(rest[1], *ci); err != nil {
		return err
	}
	e, err := a.openEditor(rest[0])
	if err != nil {
		return err
	}
	defer e.Close()

	e.Find(rest[1], *ci)
	spans, first := e.Matches()
	n := len(spans)
	offsets := make([]int, n)
	for i, sp := range spans {
		offsets[i] = sp.Start
	}
	positions := e.PositionsOf(offsets)
	lines := linediff.SplitLines(e.Text())
	// Listed from the current match on, wrapping like FindNext
	for i := 0; i < n; i++ {
		index := (first + i) % n
		pos := positions[index]
		a.printf("%s:%s: %s  %s\n", rest[0], pos, strings.TrimSpace(lines[pos.Line]), statusbar.MatchIndicator(index, n))
	}
	a.printf("%s\n", e.Status())
	if n == 0 {
		return errNoMatch
	}
	return nil
}

func cmdSubst(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("subst", "[-i] FILE QUERY REPLACEMENT")
	ci := fs.Bool("i", a.cfg.Editor.CaseInsensitive, "Ignore case")
	rest, err := parse(fs, args, 3, 3)
	if err != nil {
		return err
	}
	e, err := a.openEditor(rest[0])
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.ReplaceAll(rest[1], rest[2], *ci)
	if err != nil {
		return err
	}
	if n == 0 {
		a.printf("%s: no matches\n", rest[0])
		return errNoMatch
	}
	if err := e.Save(); err != nil {
		return err
	}
	a.printf("%s: replaced %d occurrence(s)\n", rest[0], n)
	return nil
}

func cmdUndo(_ context.Context, a *app, args []string) error {
	return stepHistory(a, "undo", args)
}

func cmdRedo(_ context.Context, a *app, args []string) error {
	return stepHistory(a, "redo", args)
}

// stepHistory restores the history saved with the file, moves it one step
// and saves the result along with the moved history.
func stepHistory(a *app, name string, args []string) error {
	fs := a.flagSet(name, "FILE")
	rest, err := parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	e, err := a.openEditor(rest[0])
	if err != nil {
		return err
	}
	defer e.Close()

	restored, err := e.RestoreHistory()
	if err != nil {
		return err
	}
	if !restored {
		return fmt.Errorf("no saved history matches the current content of %s", rest[0])
	}
	step := e.Undo
	if name == "redo" {
		step = e.Redo
	}
	moved, err := step()
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("nothing to %s", name)
	}
	if err := e.Save(); err != nil {
		return err
	}
	a.printf("%s: %s done, %s\n", rest[0], name, e.Status())
	return nil
}

func cmdNormalize(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("normalize", "-to unix|windows|mac FILE")
	to := fs.String("to", "", "Target line ending")
	rest, err := parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	target, err := lineending.ParseTarget(*to)
	if err != nil || target == lineending.Unspecified {
		fs.Usage()
		return errUsage
	}
	tio, err := a.textIO()
	if err != nil {
		return err
	}
	text, bom, err := tio.ReadAllBOM(rest[0])
	if err != nil {
		return err
	}
	out := lineending.Normalize(text, target)
	if out == text {
		a.printf("%s: already %s\n", rest[0], target)
		return nil
	}
	if err := tio.RewriteBOM(rest[0], out, bom); err != nil {
		return err
	}
	a.printf("%s: %s -> %s\n", rest[0], lineending.Detect(text), target)
	return nil
}

func cmdStats(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("stats", "FILE")
	rest, err := parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	binary, err := fileio.Sniff(a.fsys, rest[0])
	if err != nil {
		return err
	}
	if binary {
		a.printf("%s: binary file\n", rest[0])
		return nil
	}
	tio, err := a.textIO()
	if err != nil {
		return err
	}
	text, bom, err := tio.ReadAllBOM(rest[0])
	if err != nil {
		return err
	}
	charset := tio.Charset()
	if bom != fileio.NoBOM {
		charset = bom.String()
	}
	a.printf("%s\n", statusbar.Summary(statusbar.Count(text), -1, 0))
	a.printf("Encoding: %s, Line endings: %s\n", charset, lineending.Detect(text))
	return nil
}

func cmdSettings(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("settings", "[-delete] [KEY [VALUE]]")
	del := fs.Bool("delete", false, "Remove KEY")
	rest, err := parse(fs, args, 0, 2)
	if err != nil {
		return err
	}
	db, err := a.store()
	if err != nil {
		return err
	}

	switch {
	case len(rest) == 0:
		all, err := db.All()
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.printf("%s = %s\n", k, all[k])
		}
	case *del:
		return db.Delete(rest[0])
	case len(rest) == 1:
		v, err := db.Get(rest[0])
		if errors.Is(err, store.ErrNotFound) {
			a.printf("%s is not set\n", rest[0])
			return errNoMatch
		}
		if err != nil {
			return err
		}
		a.printf("%s\n", v)
	default:
		if err := checkSetting(rest[0], rest[1]); err != nil {
			return err
		}
		return db.Set(rest[0], rest[1])
	}
	return nil
}

// checkSetting rejects values the document settings could not use.
func checkSetting(key, value string) error {
	switch key {
	case store.KeyEncoding:
		_, err := fileio.NewTextIO(nil, value, lineending.Unspecified)
		return err
	case store.KeyLineEnding:
		_, err := lineending.ParseTarget(value)
		return err
	}
	return fmt.Errorf("unknown setting %q (known: %s, %s)", key, store.KeyEncoding, store.KeyLineEnding)
}

func cmdRecent(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("recent", "")
	if _, err := parse(fs, args, 0, 0); err != nil {
		return err
	}
	db, err := a.store()
	if err != nil {
		return err
	}
	paths, err := db.Recent()
	if err != nil {
		return err
	}
	for _, p := range paths {
		a.printf("%s\n", p)
	}
	return nil
}

func cmdQueries(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("queries", "[-clear] [PREFIX]")
	forget := fs.Bool("clear", false, "Forget every remembered query")
	rest, err := parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	db, err := a.store()
	if err != nil {
		return err
	}
	if *forget {
		return db.ClearQueries()
	}
	prefix := ""
	if len(rest) == 1 {
		prefix = rest[0]
	}
	queries, err := db.Suggestions(prefix)
	if err != nil {
		return err
	}
	for _, q := range queries {
		a.printf("%s\n", q)
	}
	return nil
}

func cmdThemes(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("themes", "")
	if _, err := parse(fs, args, 0, 0); err != nil {
		return err
	}
	m := a.themes()
	current := m.Current().Name
	for _, name := range m.ListThemes() {
		mark := " "
		if name == current {
			mark = "*"
		}
		a.printf("%s %s\n", mark, name)
	}
	return nil
}
