package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/naming"
)

// FileTask is one RAW file scheduled for extraction.
type FileTask struct {
	InputPath  string // Path under the input root.
	RelPath    string // InputPath relative to the input root.
	OutputPath string // Mirrored .jpg path, collision-resolved.
}

// Layout holds the resolved input and output roots. It is built once and
// shared read-only by every task in a run.
type Layout struct {
	InputRoot  string
	OutputRoot string

	// nested is the output root when it lies inside the input tree; the
	// walk never descends into it.
	nested string
}

// NewLayout resolves both roots to absolute, symlink-free paths. The output
// root does not have to exist yet.
func NewLayout(inputDir, outputDir string) (*Layout, error) {
	in, err := resolvePath(inputDir)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", inputDir, err)
	}
	out, err := resolvePath(outputDir)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", outputDir, err)
	}
	l := &Layout{InputRoot: in, OutputRoot: out}
	if config.OutputNested(in, out) {
		l.nested = out
	}
	return l, nil
}

// resolvePath returns the absolute, symlink-resolved path. For a path that
// does not exist yet, the nearest existing ancestor is resolved instead.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	dir, err := resolvePath(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// extensionSet builds a lookup of lowercase extensions with a leading dot.
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		if e = config.NormalizeExtension(e); e != "" {
			set["."+e] = true
		}
	}
	return set
}

// Discover walks the input root with an explicit directory stack and
// returns a task for every file whose extension (case-insensitive) is in
// exts. Subdirectories are always entered, symlinked directories are not
// followed, and a nested output root is skipped. Tasks are sorted by
// RelPath so logs and collision suffixes are deterministic.
func Discover(layout *Layout, exts []string) ([]FileTask, error) {
	match := extensionSet(exts)

	var tasks []FileTask
	pending := []string{layout.InputRoot}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.IsDir() {
				if path != layout.nested {
					pending = append(pending, path)
				}
				continue
			}
			if !match[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			rel, err := filepath.Rel(layout.InputRoot, path)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, FileTask{InputPath: path, RelPath: rel})
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].RelPath < tasks[j].RelPath })

	resolver := naming.NewCollisionResolver()
	for i := range tasks {
		want := naming.OutputPath(layout.OutputRoot, tasks[i].RelPath)
		tasks[i].OutputPath = resolver.Resolve(tasks[i].InputPath, want)
	}
	return tasks, nil
}

// CreateOutputDirs creates the mirrored directory of every task's output,
// so only branches of the input tree that contain matches appear in the
// output tree.
func CreateOutputDirs(tasks []FileTask) error {
	made := make(map[string]bool)
	for _, t := range tasks {
		dir := filepath.Dir(t.OutputPath)
		if made[dir] {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		made[dir] = true
	}
	return nil
}
