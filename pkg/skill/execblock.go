package skill

import (
	"regexp"
	"sort"
	"strings"
)

// ExecMarker is the sentinel comment line that promotes the following
// ```bash fence into an execution block. Fenced code without the marker is
// plain documentation.
const ExecMarker = "<!-- SKILLBOOK:EXEC -->"

const fenceOpen = "```bash"
const fenceClose = "```"

var (
	markerPattern      = regexp.MustCompile(`^<!--\s*SKILLBOOK:EXEC\s*-->$`)
	placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)
)

// ExtractBlocks scans a skill body for marked execution blocks, in
// document order. Extraction is purely syntactic: the command text is not
// validated against any shell grammar. An unterminated fence after a
// marker is treated as documentation.
func ExtractBlocks(body string) []ExecutionBlock {
	lines := strings.Split(body, "\n")

	var blocks []ExecutionBlock
	for i := 0; i < len(lines); i++ {
		if !markerPattern.MatchString(strings.TrimSpace(lines[i])) {
			continue
		}

		// The fence must follow the marker, allowing only blank lines
		// in between.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) || strings.TrimSpace(lines[j]) != fenceOpen {
			continue
		}

		end := -1
		for k := j + 1; k < len(lines); k++ {
			if strings.TrimSpace(lines[k]) == fenceClose {
				end = k
				break
			}
		}
		if end == -1 {
			continue
		}

		command := strings.Join(lines[j+1:end], "\n")
		blocks = append(blocks, ExecutionBlock{
			Command:   command,
			Variables: Placeholders(command),
		})
		i = end
	}

	return blocks
}

// Placeholders returns the sorted set of {{name}} template variables in
// text. Any {{identifier}} pattern counts as a placeholder, even inside
// quoted strings meant for another template engine; that false-positive
// risk is accepted in exchange for a single unambiguous scan.
func Placeholders(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
