package retrofit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/fsutil"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
)

// Range is an inclusive range of lesson numbers. File names are "%02d.html".
type Range struct {
	First int
	Last  int
}

// DefaultRange covers the lessons that predate the shared sidebar.
var DefaultRange = Range{First: 7, Last: 43}

// MaxRangeSize bounds how many files one batch may cover.
const MaxRangeSize = 1000

// Len is the number of lesson numbers in r, saturating at MaxRangeSize+1.
func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	// The difference wraps for extreme bounds but stays exact as uint64.
	if uint64(r.Last-r.First) >= MaxRangeSize {
		return MaxRangeSize + 1
	}
	return r.Last - r.First + 1
}

// Validate rejects negative, empty and oversized ranges.
func (r Range) Validate() error {
	switch {
	case r.First < 0:
		return fmt.Errorf("retrofit range %d..%d: first must not be negative", r.First, r.Last)
	case r.Len() == 0:
		return fmt.Errorf("retrofit range %d..%d is empty", r.First, r.Last)
	case r.Len() > MaxRangeSize:
		return fmt.Errorf("retrofit range %d..%d covers more than %d files", r.First, r.Last, MaxRangeSize)
	}
	return nil
}

// FileName is the page name of lesson n.
func FileName(n int) string {
	return fmt.Sprintf("%02d.html", n)
}

// FileResult is the outcome for one file in the range.
type FileResult struct {
	Name    string
	Outcome Outcome
	Err     error
}

// BatchResult collects per-file outcomes in range order.
type BatchResult struct {
	Files    []FileResult
	Canceled bool
}

// Modified returns the names of files that were patched.
func (r *BatchResult) Modified() []string {
	var out []string
	for _, f := range r.Files {
		if f.Outcome == OutcomePatched {
			out = append(out, f.Name)
		}
	}
	return out
}

// Failed returns the files that could not be patched.
func (r *BatchResult) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Outcome == OutcomeError {
			out = append(out, f)
		}
	}
	return out
}

// Count returns how many files ended with outcome o.
func (r *BatchResult) Count(o Outcome) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == o {
			n++
		}
	}
	return n
}

// Summary returns a human-readable single-line summary.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("files=%d patched=%d skipped=%d missing=%d errors=%d",
		len(r.Files), r.Count(OutcomePatched), r.Count(OutcomeAlreadyPatched), r.Count(OutcomeMissing), r.Count(OutcomeError))
}

// Err returns a retrofit error when any file failed or the batch was canceled.
func (r *BatchResult) Err() error {
	failed := r.Failed()
	if len(failed) == 0 && !r.Canceled {
		return nil
	}
	lbe := lberrors.RetrofitFailed(len(failed), len(r.Files))
	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, f.Err)
	}
	if r.Canceled {
		errs = append(errs, context.Canceled)
	}
	lbe.Cause = errors.Join(errs...)
	return lbe
}

// RunBatch patches every file of rng inside dir. Per-file failures are
// recorded and never stop the batch; files outside rng are never opened.
// Ranges longer than MaxRangeSize are cut to their first MaxRangeSize files.
func RunBatch(ctx context.Context, dir string, rng Range, opts Options) *BatchResult {
	res := &BatchResult{}
	if rng.Len() > MaxRangeSize {
		slog.Warn("Retrofit range truncated", slog.Int("first", rng.First), slog.Int("last", rng.Last), logfields.Count(MaxRangeSize))
		rng.Last = rng.First + MaxRangeSize - 1
	}
	for i := 0; i < rng.Len(); i++ {
		if ctx.Err() != nil {
			res.Canceled = true
			break
		}
		name := FileName(rng.First + i)
		fr := patchFile(filepath.Join(dir, name), name, opts)
		res.Files = append(res.Files, fr)
		attrs := []any{logfields.File(name), logfields.Outcome(string(fr.Outcome))}
		if fr.Err != nil {
			slog.Warn("Retrofit failed", append(attrs, logfields.Error(fr.Err))...)
		} else {
			slog.Debug("Retrofit", attrs...)
		}
	}
	return res
}

func patchFile(path, name string, opts Options) FileResult {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return FileResult{Name: name, Outcome: OutcomeMissing}
	case err != nil:
		return FileResult{Name: name, Outcome: OutcomeError, Err: err}
	case info.IsDir():
		return FileResult{Name: name, Outcome: OutcomeError, Err: fmt.Errorf("%s: is a directory", name)}
	}

	// #nosec G304 -- path is dir joined with a generated numeric name
	page, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Name: name, Outcome: OutcomeError, Err: err}
	}
	outcome, patched, err := Patch(name, page, opts)
	if err != nil {
		return FileResult{Name: name, Outcome: OutcomeError, Err: err}
	}
	if outcome == OutcomePatched {
		if err := fsutil.WriteFileAtomic(path, patched, info.Mode().Perm()); err != nil {
			return FileResult{Name: name, Outcome: OutcomeError, Err: fmt.Errorf("%s: %w", name, err)}
		}
	}
	return FileResult{Name: name, Outcome: outcome}
}

// FormatLine renders the console line for one file result.
func FormatLine(f FileResult) string {
	switch f.Outcome {
	case OutcomeAlreadyPatched:
		return "SKIP (already patched): " + f.Name
	case OutcomePatched:
		return "Patched: " + f.Name
	case OutcomeMissing:
		return "Missing file " + f.Name
	default:
		msg := ""
		if f.Err != nil {
			msg = strings.TrimPrefix(f.Err.Error(), f.Name+": ")
		}
		return "ERROR " + f.Name + ": " + msg
	}
}
