package runner

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mainbong/spagrep/internal/config"
	"github.com/mainbong/spagrep/internal/filesystem"
	"github.com/mainbong/spagrep/internal/logger"
	"github.com/mainbong/spagrep/internal/search"
	"github.com/mainbong/spagrep/internal/terminal"
)

// ErrInvalidUTF8 is the cause attached to a FileReadError for non-text files.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// FileReadError reports a file that could not be read as text.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return e.Err.Error()
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Runner reads a file, matches it against a request and prints the matching lines.
type Runner struct {
	fs  filesystem.FileSystem
	out io.Writer
}

// New creates a runner that reads from the OS file system.
func New(out io.Writer) *Runner {
	return NewWithFS(out, filesystem.NewOSFileSystem())
}

// NewWithFS creates a runner with a custom FileSystem (for testing)
func NewWithFS(out io.Writer, fs filesystem.FileSystem) *Runner {
	return &Runner{
		fs:  fs,
		out: out,
	}
}

// Run performs one search. It returns a *FileReadError when the file cannot be read and
// search.ErrNoMatches when nothing matched; nothing is printed in either case.
func (r *Runner) Run(req *config.Request) error {
	logger.Debug("search request: query=%q file=%s case_sensitive=%t", req.Query, req.Filename, req.CaseSensitive)

	content, err := r.readText(req.Filename)
	if err != nil {
		logger.Error("failed to read %s: %v", req.Filename, err)
		return err
	}

	if logger.Enabled() {
		logger.Debug("read %s: %d byte(s), %d line(s)", req.Filename, len(content), len(search.Lines(content)))
	}

	lines, err := search.Match(req.Query, content, req.CaseSensitive)
	if err != nil {
		logger.Info("searched %s (%s): no matches", req.Filename, mode(req))
		return err
	}
	logger.Info("searched %s (%s): %d match(es)", req.Filename, mode(req), len(lines))

	renderer := terminal.NewRenderer(r.out, req.Query, req.CaseSensitive)
	if err := renderer.RenderLines(lines); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func (r *Runner) readText(path string) (string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileReadError{Path: path, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

func mode(req *config.Request) string {
	if req.CaseSensitive {
		return "case-sensitive"
	}
	return "case-insensitive"
}
