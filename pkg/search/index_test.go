package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillbook/pkg/skill"
)

func testSkills() []*skill.Skill {
	return []*skill.Skill{
		{
			Metadata: skill.Metadata{
				Name:        "ReactVite",
				Description: "Scaffold a React app with Vite",
				Grade:       skill.GradeA,
				Tags:        []string{"frontend", "react"},
			},
			ID:   "skills/reactvite",
			Body: "# ReactVite\n\nUse npm create vite for scaffolding.\n",
		},
		{
			Metadata: skill.Metadata{
				Name:        "React Testing",
				Description: "Component tests with vitest",
				Grade:       skill.GradeB,
				Tags:        []string{"frontend", "testing"},
			},
			ID:   "skills/react-testing",
			Body: "# React Testing\n\nvitest and testing-library basics.\n",
		},
		{
			Metadata: skill.Metadata{
				Name:        "Deploy Fly",
				Description: "Ship a container to fly.io",
				Grade:       skill.GradeA,
				Tags:        []string{"deploy", "fly"},
			},
			ID:   "skills/deploy-fly",
			Body: "# Deploy Fly\n\nflyctl deploy with a Dockerfile.\n",
		},
	}
}

func queryIDs(idx *Index, term string) []string {
	var ids []string
	for _, sk := range idx.Query(term) {
		ids = append(ids, sk.ID)
	}
	return ids
}

func TestQuerySingleToken(t *testing.T) {
	idx := Build(testSkills())

	ids := queryIDs(idx, "react")
	assert.Equal(t, []string{"skills/reactvite", "skills/react-testing"}, ids)
}

func TestQueryConjunction(t *testing.T) {
	idx := Build(testSkills())

	// Every token must match; "react deploy" spans no single skill.
	assert.Empty(t, idx.Query("react deploy"))
	assert.Equal(t, []string{"skills/react-testing"}, queryIDs(idx, "react vitest"))
}

func TestQuerySubstringMatch(t *testing.T) {
	idx := Build(testSkills())

	// "fly" matches both the tag and the "flyctl" token in the body.
	assert.Equal(t, []string{"skills/deploy-fly"}, queryIDs(idx, "flyctl"))
	assert.Equal(t, []string{"skills/deploy-fly"}, queryIDs(idx, "fly"))
}

func TestQueryCaseInsensitive(t *testing.T) {
	idx := Build(testSkills())

	assert.Equal(t, queryIDs(idx, "react"), queryIDs(idx, "REACT"))
	assert.Equal(t, queryIDs(idx, "react"), queryIDs(idx, "React"))
}

func TestQueryExactNameRanksFirst(t *testing.T) {
	idx := Build(testSkills())

	ids := queryIDs(idx, "reactvite")
	require.NotEmpty(t, ids)
	assert.Equal(t, "skills/reactvite", ids[0])
}

func TestQueryTagMatchOutranksBodyMatch(t *testing.T) {
	skills := []*skill.Skill{
		{
			Metadata: skill.Metadata{Name: "Alpha", Grade: skill.GradeA},
			ID:       "skills/alpha",
			Body:     "mentions docker in passing",
		},
		{
			Metadata: skill.Metadata{Name: "Beta", Grade: skill.GradeC, Tags: []string{"docker"}},
			ID:       "skills/beta",
			Body:     "container workflows",
		},
	}
	idx := Build(skills)

	// The tag match wins even though its grade is worse.
	assert.Equal(t, []string{"skills/beta", "skills/alpha"}, queryIDs(idx, "docker"))
}

func TestQueryGradeBreaksTies(t *testing.T) {
	skills := []*skill.Skill{
		{Metadata: skill.Metadata{Name: "Zeta", Grade: skill.Ungraded}, ID: "skills/zeta", Body: "shared topic"},
		{Metadata: skill.Metadata{Name: "Eta", Grade: skill.GradeB}, ID: "skills/eta", Body: "shared topic"},
		{Metadata: skill.Metadata{Name: "Theta", Grade: skill.GradeA}, ID: "skills/theta", Body: "shared topic"},
	}
	idx := Build(skills)

	assert.Equal(t, []string{"skills/theta", "skills/eta", "skills/zeta"}, queryIDs(idx, "shared"))
}

func TestQueryDeterministic(t *testing.T) {
	idx := Build(testSkills())

	first := queryIDs(idx, "frontend")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, queryIDs(idx, "frontend"))
	}
}

func TestQueryNoMatch(t *testing.T) {
	idx := Build(testSkills())

	assert.Empty(t, idx.Query("kubernetes"))
	assert.Empty(t, idx.Query(""))
	assert.Empty(t, idx.Query("   "))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"npm", "create", "vite", "target_dir"}, tokenize("npm create vite {{target_dir}}"))
	assert.Equal(t, []string{"fly", "io"}, tokenize("fly.io"))
	assert.Empty(t, tokenize("---"))
}
