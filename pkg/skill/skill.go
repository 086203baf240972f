// Package skill implements the skill document engine: parsing markdown
// skill files into structured metadata plus executable plans, serializing
// them back, and rendering template placeholders in execution blocks.
// A skill file carries YAML frontmatter describing the skill and zero or
// more marked ```bash fences that form its execution plans.
package skill

// Grade is an ordinal quality tier attached to a skill. The empty grade
// means the skill is ungraded.
type Grade string

const (
	// GradeA marks a battle-tested skill.
	GradeA Grade = "A"
	// GradeB marks a solid default choice.
	GradeB Grade = "B"
	// GradeC marks an experimental or situational skill.
	GradeC Grade = "C"
	// Ungraded is the zero value for skills without a grade.
	Ungraded Grade = ""
)

// Valid reports whether g is A, B, C or absent.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, Ungraded:
		return true
	}
	return false
}

// Rank returns the sort position of the grade: A before B before C before
// ungraded.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 0
	case GradeB:
		return 1
	case GradeC:
		return 2
	}
	return 3
}

// Metadata is the typed frontmatter record of a skill file. Keys outside
// the recognized set round-trip opaquely through Extra so that documents
// authored for newer versions are not mangled on save.
type Metadata struct {
	Name        string         `mapstructure:"name" yaml:"name"`
	Description string         `mapstructure:"description" yaml:"description,omitempty"`
	Grade       Grade          `mapstructure:"grade" yaml:"grade,omitempty"`
	Tags        []string       `mapstructure:"tags" yaml:"tags,omitempty"`
	Pros        []string       `mapstructure:"pros" yaml:"pros,omitempty"`
	Cons        []string       `mapstructure:"cons" yaml:"cons,omitempty"`
	Extra       map[string]any `mapstructure:",remain" yaml:",inline"`
}

// IsZero reports whether the metadata carries no fields at all, which is
// the case for documents without frontmatter delimiters.
func (m Metadata) IsZero() bool {
	return m.Name == "" && m.Description == "" && m.Grade == Ungraded &&
		len(m.Tags) == 0 && len(m.Pros) == 0 && len(m.Cons) == 0 && len(m.Extra) == 0
}

// ExecutionBlock is one runnable plan within a skill: the raw command text
// as authored and the set of template placeholders it declares.
type ExecutionBlock struct {
	Command   string   // unmodified command script from the ```bash fence
	Variables []string // sorted placeholder names found in Command
}

// Skill is one knowledge unit loaded from the library. Skills are value
// objects: constructed once per load pass and never mutated in place.
type Skill struct {
	Metadata

	ID     string // stable identifier derived from the file path
	Path   string // absolute path of the backing file
	Body   string // markdown prose after the frontmatter, searchable but not executed
	Blocks []ExecutionBlock
}
