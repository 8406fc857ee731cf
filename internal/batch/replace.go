package batch

import (
	"context"

	"github.com/SEPLEMBER/Oxy-test/internal/core/find"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// DefaultBackupSuffix is appended to a file's path to name its backup.
const DefaultBackupSuffix = ".bak"

// ReplaceVisitor rewrites every file containing the query. Before a file is
// overwritten its original bytes are copied to path+BackupSuffix; a failed
// backup does not stop the rewrite. An empty BackupSuffix disables backups.
// Files keep their byte order mark and line endings.
type ReplaceVisitor struct {
	Matcher      *find.Matcher
	Replacement  string
	Text         *fileio.TextIO
	BackupSuffix string
}

func (v *ReplaceVisitor) VisitFile(ctx context.Context, job *Job, f fileio.Entry) error {
	fsys := v.Text.FS()
	raw, err := fsys.ReadFile(f.Path)
	if err != nil {
		return err
	}
	text, bom, err := v.Text.DecodeBOM(raw)
	if err != nil {
		return &fileio.Error{Op: "read", Path: f.Path, Kind: fileio.KindOf(err), Err: err}
	}

	out, n := v.Matcher.ReplaceAllCount(text, v.Replacement)
	if n == 0 {
		return nil
	}
	// Nothing is written once cancellation was requested
	if err := ctx.Err(); err != nil {
		return err
	}

	if v.BackupSuffix != "" {
		if err := fsys.WriteFile(f.Path+v.BackupSuffix, raw); err != nil {
			logger.DebugTagf("walk", "Backup of %s failed: %v", f.Path, err)
		}
	}
	if err := v.Text.RewriteBOM(f.Path, out, bom); err != nil {
		return err
	}

	job.Counters.FilesChanged++
	job.Counters.ReplacementsTotal += n
	job.Report()
	return nil
}
