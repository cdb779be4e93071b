package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cidrcalc/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write to w
// instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type (
	sourceFilesKey struct{}

	// Source is one named input script.
	Source struct {
		Name string
		io.Reader
	}

	// SourceText is the content read from one Source.
	SourceText struct {
		Name string
		Text string
	}

	sourceFiles struct {
		read     []Source
		hasStdin bool

		once  sync.Once
		texts []SourceText
		err   error
	}

	// SourceFiles is the set of scripts named on the command line.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		Sources() []Source
		Texts() ([]SourceText, error)
		io.Reader
		io.Closer
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Stdin returns standard input if it was included as a source, or nil
// otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return stdin
	}

	return nil
}

// Sources returns the sources in read order, with stdin last.
func (s *sourceFiles) Sources() []Source {
	srcs := append([]Source(nil), s.read...)
	if s.hasStdin {
		srcs = append(srcs, Source{Name: stdinSource, Reader: stdin})
	}

	return srcs
}

// Texts reads every source on first use and returns the same content on
// each later call.
func (s *sourceFiles) Texts() ([]SourceText, error) {
	s.once.Do(func() {
		for _, src := range s.Sources() {
			text, err := readSource(src)
			if err != nil {
				s.err = err

				return
			}

			s.texts = append(s.texts, SourceText{Name: src.Name, Text: text})
		}
	})

	return s.texts, s.err
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	srcs := s.Sources()

	readers := make([]io.Reader, len(srcs))
	for i, src := range srcs {
		readers[i] = src.Reader
	}

	return io.MultiReader(readers...).Read(p)
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, src := range s.read {
		if c, ok := src.Reader.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the given source
// files.
//
// The function deduplicates files by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin source
// placed last so it reads after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

// buildSourceFiles constructs a SourceFiles from the given source paths.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]Source, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, Source{Name: src, Reader: reader})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, srcs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// SourceFilesFrom retrieves the SourceFiles stored in ctx by
// WithSourceFiles. Returns nil if none were stored.
func SourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// readSource reads all of src, wrapping failures in the error chain.
func readSource(src Source) (string, error) {
	data, err := io.ReadAll(src.Reader)
	if err != nil {
		sentinel := pkg.ErrReadInput
		if src.Name == stdinSource {
			sentinel = pkg.ErrReadStdin
		}

		return "", pkg.MakeError(err).Wrap(sentinel).Wrapf("%s", src.Name)
	}

	return string(data), nil
}

// stdin is the reader used for "-" when no source files are given.
//
//nolint:gochecknoglobals
var stdin io.Reader = os.Stdin
