package skill

import "sort"

// Render substitutes every {{name}} placeholder in the raw command text
// with its bound value. Bindings must cover exactly the declared variable
// set: a declared variable without a binding fails with
// UnboundVariableError, and a binding for an undeclared variable fails
// with UnknownVariableError. Bound values are opaque strings; a value that
// itself contains {{...}} is not re-substituted, so rendering cannot loop.
func Render(raw string, bindings map[string]string) (string, error) {
	declared := Placeholders(raw)

	declaredSet := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		declaredSet[name] = struct{}{}
		if _, ok := bindings[name]; !ok {
			return "", &UnboundVariableError{Name: name}
		}
	}

	supplied := make([]string, 0, len(bindings))
	for name := range bindings {
		supplied = append(supplied, name)
	}
	sort.Strings(supplied)
	for _, name := range supplied {
		if _, ok := declaredSet[name]; !ok {
			return "", &UnknownVariableError{Name: name}
		}
	}

	// ReplaceAllStringFunc walks the original text once, so substituted
	// values are never rescanned.
	return placeholderPattern.ReplaceAllStringFunc(raw, func(token string) string {
		name := token[2 : len(token)-2]
		return bindings[name]
	}), nil
}
