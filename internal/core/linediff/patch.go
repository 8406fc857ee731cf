package linediff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func newDMP() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // exact diffs; inputs are whole documents of ordinary size
	return dmp
}

// lineDiffs computes a diff whose units are whole lines.
func lineDiffs(dmp *diffmatchpatch.DiffMatchPatch, a, b string) []diffmatchpatch.Diff {
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// MakePatch produces a patch in diff-match-patch text form that turns a
// into b.
func MakePatch(a, b string) string {
	dmp := newDMP()
	patches := dmp.PatchMake(a, lineDiffs(dmp, a, b))
	return dmp.PatchToText(patches)
}

// ApplyPatch applies a patch produced by MakePatch to text. The bool slice
// reports per hunk whether it applied; hunks that fail are skipped.
func ApplyPatch(text, patch string) (string, []bool, error) {
	dmp := newDMP()
	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return text, nil, fmt.Errorf("parse patch: %w", err)
	}
	out, applied := dmp.PatchApply(patches, text)
	return out, applied, nil
}
