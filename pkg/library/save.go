package library

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillbook/pkg/logger"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

// Save serializes a skill back to its file form and writes it atomically:
// the content goes to a temp path first and is renamed into place, so a
// concurrent load sees either the old file or the fully written new one,
// never a partial write.
func (l *Library) Save(ctx context.Context, sk *skill.Skill) error {
	if sk.Path == "" {
		return errors.New("skill has no backing path")
	}

	content, err := skill.Serialize(sk.Metadata, sk.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize skill %q", sk.ID)
	}

	if err := os.MkdirAll(filepath.Dir(sk.Path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create skill directory")
	}

	tmp := sk.Path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to write skill file")
	}
	if err := os.Rename(tmp, sk.Path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "failed to move skill file into place")
	}

	logger.G(ctx).WithField("path", sk.Path).Debug("saved skill file")
	return nil
}
