package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// Walker discovers files by extension in a directory tree.
// Walker is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Walker struct {
	fsProvider    filesystem.FileSystemProvider
	includeHidden bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithHidden makes the walker descend into hidden directories and match hidden files.
func WithHidden(include bool) Option {
	return func(w *Walker) {
		w.includeHidden = include
	}
}

// NewWalker creates a new walker over the OS filesystem.
func NewWalker(opts ...Option) *Walker {
	return NewWalkerWithFS(filesystem.NewOSFileSystem(), opts...)
}

// NewWalkerWithFS creates a new walker with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewWalkerWithFS(fsProvider filesystem.FileSystemProvider, opts ...Option) *Walker {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	w := &Walker{fsProvider: fsProvider}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk recursively scans root and returns the paths of files whose
// extension matches one of extensions.
//
// Returns:
//   - htmlsign.WalkResult: matching files plus entries that could not be visited
//   - error: only when root itself cannot be opened or walked
func (w *Walker) Walk(root string, extensions []string) (htmlsign.WalkResult, error) {
	filter := newExtensionFilter(extensions)
	if filter.empty() {
		return htmlsign.WalkResult{}, fmt.Errorf("no extensions to match: %w", htmlsign.ErrInvalidConfig)
	}

	dir, err := w.fsProvider.Open(root)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return htmlsign.WalkResult{}, fmt.Errorf("%s: %w", root, htmlsign.ErrInputNotFound)
		}
		return htmlsign.WalkResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	result := htmlsign.WalkResult{Skipped: map[string]error{}}
	var regular, linked []match

	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			result.Skipped[pathOf(walkErr)] = walkErr
			return nil
		}

		info := file.Info()
		isRoot := file.RelativePath() == "."

		if !isRoot && !w.includeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			target, statErr := w.fsProvider.Stat(file.Path())
			switch {
			case statErr != nil:
				if filter.matches(info.Name()) {
					result.Skipped[file.Path()] = fmt.Errorf("broken link: %w", statErr)
				}
			case target.IsDir():
				result.Skipped[file.Path()] = errLinkedDirectory
			case target.Mode().IsRegular() && filter.matches(info.Name()):
				m := match{path: file.Path(), info: target}
				if other, dup := m.sameAsAny(regular, linked); dup {
					result.Skipped[m.path] = fmt.Errorf("same file as %s", other)
					return nil
				}
				linked = append(linked, m)
				result.Files = append(result.Files, m.path)
			}
			return nil
		}

		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		if filter.matches(info.Name()) {
			m := match{path: file.Path(), info: info}
			if other, dup := m.sameAsAny(linked); dup {
				result.Skipped[m.path] = fmt.Errorf("same file as %s", other)
				return nil
			}
			regular = append(regular, m)
			result.Files = append(result.Files, m.path)
		}
		return nil
	})
	if err != nil {
		return htmlsign.WalkResult{}, fmt.Errorf("error walking %s: %w", root, err)
	}

	return result, nil
}

// errLinkedDirectory marks symlinked directories, which are not descended
// into so a link cycle cannot loop the walk.
var errLinkedDirectory = errors.New("symlinked directory not followed")

// match is a file picked for signing. Links are compared against
// other matches so a page reachable twice is signed once.
type match struct {
	path string
	info fs.FileInfo
}

func (m match) sameAsAny(groups ...[]match) (string, bool) {
	for _, group := range groups {
		for _, other := range group {
			if os.SameFile(m.info, other.info) {
				return other.path, true
			}
		}
	}
	return "", false
}

// pathOf extracts the offending path from a walk error.
func pathOf(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return err.Error()
}

type extensionFilter map[string]struct{}

func newExtensionFilter(extensions []string) extensionFilter {
	f := extensionFilter{}
	for _, ext := range extensions {
		if ext = htmlsign.NormalizeExtension(ext); ext != "" && ext != "." {
			f[ext] = struct{}{}
		}
	}
	return f
}

func (f extensionFilter) empty() bool {
	return len(f) == 0
}

func (f extensionFilter) matches(name string) bool {
	_, ok := f[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Verify Walker implements the interface at compile time
var _ htmlsign.FileWalker = (*Walker)(nil)
