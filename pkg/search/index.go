// Package search provides an in-memory keyword index over a skill library
// snapshot. The index is rebuilt wholesale on every load and never
// persisted; ranking is computed at query time.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jingkaihe/skillbook/pkg/skill"
)

// Index maps normalized tokens to the set of skill ids containing them in
// name, description, tags or body.
type Index struct {
	tokens map[string]map[string]struct{}
	skills map[string]*skill.Skill
}

// Build tokenizes the searchable fields of every skill into a fresh index.
func Build(skills []*skill.Skill) *Index {
	idx := &Index{
		tokens: make(map[string]map[string]struct{}),
		skills: make(map[string]*skill.Skill, len(skills)),
	}

	for _, sk := range skills {
		idx.skills[sk.ID] = sk

		fields := []string{sk.Name, sk.Description, sk.Body}
		fields = append(fields, sk.Tags...)
		for _, field := range fields {
			for _, token := range tokenize(field) {
				ids, ok := idx.tokens[token]
				if !ok {
					ids = make(map[string]struct{})
					idx.tokens[token] = ids
				}
				ids[sk.ID] = struct{}{}
			}
		}
	}

	return idx
}

// Query returns the skills matching term, most relevant first. The term is
// lowercased and split on whitespace; a skill must contain every query
// token (as a word or inside one) to be returned at all. Exact name
// matches rank first, tag matches second, description/body matches third;
// ties break on grade (A before B before C before ungraded) and then on
// name, so the order is deterministic.
func (idx *Index) Query(term string) []*skill.Skill {
	queryTokens := strings.Fields(strings.ToLower(term))
	if len(queryTokens) == 0 {
		return nil
	}

	matched := idx.lookup(queryTokens[0])
	for _, qt := range queryTokens[1:] {
		if len(matched) == 0 {
			return nil
		}
		matched = intersect(matched, idx.lookup(qt))
	}
	if len(matched) == 0 {
		return nil
	}

	results := make([]*skill.Skill, 0, len(matched))
	for id := range matched {
		results = append(results, idx.skills[id])
	}

	query := strings.TrimSpace(term)
	tier := func(sk *skill.Skill) int {
		if strings.EqualFold(sk.Name, query) {
			return 0
		}
		if matchesAllTags(sk, queryTokens) {
			return 1
		}
		return 2
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if ta, tb := tier(a), tier(b); ta != tb {
			return ta < tb
		}
		if ra, rb := a.Grade.Rank(), b.Grade.Rank(); ra != rb {
			return ra < rb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return results
}

// lookup returns the ids of skills whose indexed tokens contain qt, either
// exactly or as a substring of a longer word.
func (idx *Index) lookup(qt string) map[string]struct{} {
	matched := make(map[string]struct{})
	for token, ids := range idx.tokens {
		if !strings.Contains(token, qt) {
			continue
		}
		for id := range ids {
			matched[id] = struct{}{}
		}
	}
	return matched
}

func matchesAllTags(sk *skill.Skill, queryTokens []string) bool {
	for _, qt := range queryTokens {
		found := false
		for _, tag := range sk.Tags {
			if strings.Contains(strings.ToLower(tag), qt) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// tokenize lowercases text and splits it into alphanumeric words.
// Underscores stay inside tokens so shell variable names remain
// searchable.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
