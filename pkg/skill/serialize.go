package skill

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Serialize renders metadata and body back into the skill file text form.
// Parsing the output again yields metadata and body equal to the inputs,
// so a load/save cycle is stable.
func Serialize(m Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer

	if !m.IsZero() {
		buf.WriteString(frontmatterDelimiter)
		buf.WriteByte('\n')

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, errors.Wrap(err, "failed to encode frontmatter")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to finalize frontmatter")
		}

		buf.WriteString(frontmatterDelimiter)
		buf.WriteByte('\n')
	}

	buf.WriteString(body)
	return buf.Bytes(), nil
}
