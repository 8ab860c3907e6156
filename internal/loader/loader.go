// Package loader populates an index from a YAML manifest of simulated files.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"fsindex/internal/fsnode"
	"fsindex/internal/index"
	"fsindex/internal/logging"
)

// ErrEmptyPath is reported for manifest entries without a file name.
var ErrEmptyPath = errors.New("empty path")

// Entry describes one file of the manifest. Path is slash separated and
// relative to the root; its last segment is the file name.
type Entry struct {
	Path     string            `yaml:"path"`
	Size     int64             `yaml:"size"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type Manifest struct {
	// Root optionally overrides the configured root directory name.
	Root  string  `yaml:"root,omitempty"`
	Files []Entry `yaml:"files"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	if m.Files == nil {
		m.Files = []Entry{}
	}
	return &m, nil
}

// Tracker receives progress while entries are prepared. Implementations must
// be safe for concurrent use.
type Tracker interface {
	SetDirectory(dir string)
	Increment()
}

// Prepared is a validated entry ready for insertion.
type Prepared struct {
	Segments []string
	File     *fsnode.File
}

type Result struct {
	Files    []Prepared
	Excluded int
	Errors   []error
}

type outcome struct {
	prepared *Prepared
	excluded bool
	err      error
}

// Prepare validates entries and builds their file nodes on a bounded worker
// pool. Invalid entries are skipped and reported in Result.Errors. The order
// of Result.Files follows the manifest regardless of worker scheduling.
func Prepare(ctx context.Context, entries []Entry, exclusions []string, workers int, tracker Tracker) (*Result, error) {
	if workers <= 0 {
		workers = 1
	}

	result := &Result{
		Files:  make([]Prepared, 0, len(entries)),
		Errors: make([]error, 0),
	}

	if len(entries) == 0 {
		return result, nil
	}

	outcomes := make([]outcome, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = prepareEntry(entry, exclusions)

			if tracker != nil && outcomes[i].prepared != nil {
				tracker.SetDirectory(path.Dir(entry.Path))
				tracker.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to prepare manifest: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to prepare manifest: %w", err)
	}

	for i, o := range outcomes {
		switch {
		case o.err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("entry %d (%q): %w", i, entries[i].Path, o.err))
		case o.excluded:
			result.Excluded++
			logging.Debug("entry excluded", logging.String("path", entries[i].Path))
		default:
			result.Files = append(result.Files, *o.prepared)
		}
	}

	return result, nil
}

func prepareEntry(entry Entry, exclusions []string) outcome {
	segments := splitPath(entry.Path)
	if len(segments) == 0 {
		return outcome{err: ErrEmptyPath}
	}

	if shouldExclude(segments, exclusions) {
		return outcome{excluded: true}
	}

	name := segments[len(segments)-1]
	file, err := fsnode.NewFile(name, entry.Size, withExtension(name, entry.Metadata))
	if err != nil {
		return outcome{err: err}
	}

	return outcome{prepared: &Prepared{
		Segments: segments[:len(segments)-1],
		File:     file,
	}}
}

// withExtension copies metadata and fills in "extension" from the file name
// when it is missing. Dotfiles such as ".env" get no extension.
func withExtension(name string, metadata map[string]string) map[string]string {
	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	if _, ok := meta["extension"]; ok {
		return meta
	}
	ext := path.Ext(name)
	if ext != "" && ext != name {
		meta["extension"] = strings.TrimPrefix(ext, ".")
	}
	return meta
}

// splitPath drops empty and "." segments so "a//b/./c" yields [a b c].
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func shouldExclude(segments []string, exclusions []string) bool {
	relPath := strings.Join(segments, "/")
	name := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]

	for _, pattern := range exclusions {
		// Handle directory exclusions (patterns ending with /)
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range dirs {
				if matched, _ := path.Match(dirPattern, part); matched {
					return true
				}
				if part == dirPattern {
					return true
				}
			}
			continue
		}

		matched, err := path.Match(pattern, name)
		if err == nil && matched {
			return true
		}
		// Also try matching against the full relative path for patterns with /
		if strings.Contains(pattern, "/") {
			matched, err := path.Match(pattern, relPath)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Populate inserts prepared files in order. Insert failures are appended to
// result.Errors and the number of inserted files is returned.
func Populate(idx *index.Index, result *Result) int {
	inserted := 0
	for _, p := range result.Files {
		if err := idx.Insert(p.Segments, p.File); err != nil {
			logging.Warn("insert failed", logging.Err(err))
			result.Errors = append(result.Errors, err)
			continue
		}
		inserted++
	}
	logging.Info("tree populated",
		logging.Int("inserted", inserted),
		logging.Int("excluded", result.Excluded),
		logging.Int("errors", len(result.Errors)))
	return inserted
}

// Load is the usual pipeline: prepare the manifest entries and populate a
// fresh index rooted at rootName.
func Load(ctx context.Context, m *Manifest, rootName string, exclusions []string, workers int, tracker Tracker) (*index.Index, *Result, error) {
	if m.Root != "" {
		rootName = m.Root
	}

	result, err := Prepare(ctx, m.Files, exclusions, workers, tracker)
	if err != nil {
		return nil, nil, err
	}

	idx := index.New(rootName)
	Populate(idx, result)
	return idx, result, nil
}
