package skill

import (
	"bytes"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const frontmatterDelimiter = "---"

// Parse splits raw skill file text into its typed metadata and markdown
// body. A document with no frontmatter delimiters is valid: the metadata
// is empty and the whole text is body. A delimiter that is opened but
// never closed, invalid YAML, or a recognized key with the wrong shape
// fails with MalformedDocumentError.
func Parse(content []byte) (Metadata, string, error) {
	found, inner, body, err := splitFrontmatter(string(content))
	if err != nil {
		return Metadata{}, "", err
	}
	if !found {
		return Metadata{}, body, nil
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return Metadata{}, "", &MalformedDocumentError{Reason: err.Error()}
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return Metadata{}, "", &MalformedDocumentError{Reason: "frontmatter is not valid YAML: " + err.Error()}
	}
	if metaData == nil {
		if strings.TrimSpace(inner) == "" {
			// Empty frontmatter block, e.g. "---\n---\n".
			return Metadata{}, body, nil
		}
		return Metadata{}, "", &MalformedDocumentError{Reason: "frontmatter is not valid YAML"}
	}

	m, err := decodeMetadata(metaData)
	if err != nil {
		return Metadata{}, "", err
	}
	return m, body, nil
}

// decodeMetadata maps the dynamic frontmatter mapping onto the typed
// Metadata record. Unrecognized keys land in Extra and are preserved
// verbatim on serialization.
func decodeMetadata(raw map[string]any) (Metadata, error) {
	var m Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &m,
	})
	if err != nil {
		return Metadata{}, errors.Wrap(err, "failed to build metadata decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return Metadata{}, &MalformedDocumentError{Reason: err.Error()}
	}

	m.Grade = Grade(strings.ToUpper(strings.TrimSpace(string(m.Grade))))
	if !m.Grade.Valid() {
		return Metadata{}, &MalformedDocumentError{Reason: "grade must be A, B or C"}
	}
	if len(m.Extra) == 0 {
		m.Extra = nil
	}
	return m, nil
}

// splitFrontmatter returns whether the text opens a frontmatter block, the
// raw text between the delimiters, and the body after the closing one.
func splitFrontmatter(text string) (found bool, inner, body string, err error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != frontmatterDelimiter {
		return false, "", text, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			inner = strings.Join(lines[1:i], "\n")
			body = strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
			return true, inner, body, nil
		}
	}

	return false, "", "", &MalformedDocumentError{Reason: "frontmatter delimiter opened but never closed"}
}
