// Package library owns the canonical skill collection: it loads all skill
// files under a library root into an immutable in-memory snapshot, writes
// new skills back atomically, and records newly harvested skills. The
// library root directory is the only persisted state; snapshots are
// rebuilt wholesale on every load and never mutated in place.
package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillbook/pkg/logger"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

// templateFileName is the authoring template shipped with a library; it is
// never loaded as a skill.
const templateFileName = "TEMPLATE_SKILL.md"

// LoadError records a single file that failed to load. One bad skill must
// not make the whole library unusable, so these are warnings, not fatal.
type LoadError struct {
	Path string
	Err  error
}

// Library is an immutable snapshot of the skill files under a root at load
// time. Concurrent reads need no locking; a save that races with a load is
// resolved by the atomic rename in Save.
type Library struct {
	root   string
	skills []*skill.Skill
	byID   map[string]*skill.Skill
	errs   []LoadError
}

// Load walks root for markdown skill files and parses each one
// independently. Per-file failures (unreadable file, malformed document,
// missing name) are recorded and skipped. Only a root that cannot be
// scanned at all is a fatal error.
func Load(ctx context.Context, root string) (*Library, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to access library root %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("library root %q is not a directory", root)
	}

	// Unreadable subdirectories are skipped by the glob walk; per-file
	// read failures surface below as LoadErrors.
	paths, err := doublestar.Glob(os.DirFS(root), "**/*.md")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan library root %q", root)
	}
	sort.Strings(paths)

	lib := &Library{
		root: root,
		byID: make(map[string]*skill.Skill),
	}

	for _, rel := range paths {
		if filepath.Base(rel) == templateFileName {
			continue
		}

		sk, err := lib.loadFile(rel)
		if err != nil {
			logger.G(ctx).WithField("path", rel).WithError(err).Warn("skipping skill file")
			lib.errs = append(lib.errs, LoadError{Path: rel, Err: err})
			continue
		}

		lib.skills = append(lib.skills, sk)
		lib.byID[sk.ID] = sk
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"root":   root,
		"skills": len(lib.skills),
		"errors": len(lib.errs),
	}).Debug("loaded skill library")

	return lib, nil
}

func (l *Library) loadFile(rel string) (*skill.Skill, error) {
	path := filepath.Join(l.root, rel)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	meta, body, err := skill.Parse(content)
	if err != nil {
		return nil, err
	}
	if meta.Name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}

	return &skill.Skill{
		Metadata: meta,
		ID:       IDForPath(rel),
		Path:     path,
		Body:     body,
		Blocks:   skill.ExtractBlocks(body),
	}, nil
}

// IDForPath derives the stable skill id from a path relative to the
// library root: slash-separated and stripped of the .md extension.
func IDForPath(rel string) string {
	return strings.TrimSuffix(filepath.ToSlash(rel), ".md")
}

// Root returns the library root directory.
func (l *Library) Root() string {
	return l.root
}

// All returns the skills of the snapshot, sorted by id.
func (l *Library) All() []*skill.Skill {
	out := make([]*skill.Skill, len(l.skills))
	copy(out, l.skills)
	return out
}

// GetByID returns the skill with the given id.
func (l *Library) GetByID(id string) (*skill.Skill, bool) {
	sk, ok := l.byID[id]
	return sk, ok
}

// Errors returns the per-file failures recorded during load.
func (l *Library) Errors() []LoadError {
	out := make([]LoadError, len(l.errs))
	copy(out, l.errs)
	return out
}

// Err aggregates the per-file failures into a single error value, or nil
// when every file loaded cleanly.
func (l *Library) Err() error {
	var merr *multierror.Error
	for _, le := range l.errs {
		merr = multierror.Append(merr, errors.Wrap(le.Err, le.Path))
	}
	return merr.ErrorOrNil()
}

// Delete removes the backing file of the skill with the given id. The
// in-memory snapshot is left untouched; the next Load reflects the
// deletion.
func (l *Library) Delete(ctx context.Context, id string) error {
	sk, ok := l.byID[id]
	if !ok {
		return errors.Errorf("skill %q not found", id)
	}
	if err := os.Remove(sk.Path); err != nil {
		return errors.Wrapf(err, "failed to delete skill %q", id)
	}
	logger.G(ctx).WithField("path", sk.Path).Info("deleted skill file")
	return nil
}
