package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillbook/pkg/logger"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

// harvestDir is where newly authored skills land, relative to the library
// root.
const harvestDir = "skills"

// DuplicateNameError indicates that a skill with the same normalized name
// already exists in the loaded collection. Harvest refuses to shadow it.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a skill named %q already exists", e.Name)
}

// HarvestInput is the interactively supplied content of a new skill.
type HarvestInput struct {
	Name        string
	Description string
	Grade       skill.Grade
	Tags        []string
	Pros        []string
	Cons        []string
	ExecText    string // raw command script; empty means documentation-only
}

// Harvest constructs a new skill from input, extracts its execution blocks
// the same way existing files are parsed, and writes it to the library.
// The in-memory snapshot is not mutated; the next Load picks the file up.
func (l *Library) Harvest(ctx context.Context, input HarvestInput) (*skill.Skill, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("skill name is required")
	}

	grade := skill.Grade(strings.ToUpper(strings.TrimSpace(string(input.Grade))))
	if !grade.Valid() {
		return nil, errors.Errorf("invalid grade %q: must be A, B or C", input.Grade)
	}

	norm := normalizeName(name)
	for _, existing := range l.skills {
		if normalizeName(existing.Name) == norm {
			return nil, &DuplicateNameError{Name: existing.Name}
		}
	}

	slug := slugify(name)
	if slug == "" {
		return nil, errors.Errorf("skill name %q has no usable characters for a filename", name)
	}

	body := buildBody(name, input.Description, input.ExecText)
	rel := filepath.Join(harvestDir, slug+".md")
	if _, err := os.Stat(filepath.Join(l.root, rel)); err == nil {
		// A differently spelled name can still slug to an existing file.
		return nil, &DuplicateNameError{Name: name}
	}

	sk := &skill.Skill{
		Metadata: skill.Metadata{
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			Grade:       grade,
			Tags:        input.Tags,
			Pros:        input.Pros,
			Cons:        input.Cons,
		},
		ID:     IDForPath(rel),
		Path:   filepath.Join(l.root, rel),
		Body:   body,
		Blocks: skill.ExtractBlocks(body),
	}

	if err := l.Save(ctx, sk); err != nil {
		return nil, err
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"skill": sk.ID,
		"exec":  len(sk.Blocks),
	}).Info("harvested new skill")

	return sk, nil
}

func buildBody(name, description, execText string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(name)
	b.WriteString("\n")

	if desc := strings.TrimSpace(description); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if exec := strings.TrimRight(execText, "\n"); strings.TrimSpace(exec) != "" {
		b.WriteString("\n## Execution Plan\n")
		b.WriteString(skill.ExecMarker)
		b.WriteString("\n```bash\n")
		b.WriteString(exec)
		b.WriteString("\n```\n")
	}

	return b.String()
}

// normalizeName lowercases and collapses whitespace so that "React Vite"
// and "react  vite" count as the same skill.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

var slugStrip = regexp.MustCompile(`[^a-z0-9_-]`)

func slugify(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return slugStrip.ReplaceAllString(slug, "")
}
