package magicschema

import (
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
)

// hintPrefix marks a comment line as a directive hint rather than free-text
// description. A hint line looks like:
//
//	authors: []  # x-derived-from: author
//	# x-frontmatter-part: true
const hintPrefix = "x-"

// extractHints scans the comments attached to a mapping entry for directive
// hint lines and returns them as a ready-to-merge Extra map. Hint lines take
// the form "x-<name>: <yaml-value>"; the value is parsed with the YAML
// scalar rules so booleans, numbers, and quoted strings round-trip without
// an extra annotation syntax to learn. Lines that don't parse as hints are
// left for [extractComment] to pick up as plain descriptions.
func extractHints(node ast.Node) map[string]any {
	mvn, ok := node.(*ast.MappingValueNode)
	if !ok {
		return nil
	}

	hints := make(map[string]any)

	collectHints(mvn.GetComment(), hints)

	if mvn.Value != nil {
		collectHints(mvn.Value.GetComment(), hints)
	}

	if keyNode, ok := mvn.Key.(ast.Node); ok {
		collectHints(keyNode.GetComment(), hints)
	}

	if len(hints) == 0 {
		return nil
	}

	return hints
}

// collectHints appends every hint line found in comment into hints.
func collectHints(comment *ast.CommentGroupNode, hints map[string]any) {
	if comment == nil {
		return
	}

	for _, line := range strings.Split(comment.String(), "\n") {
		name, raw, ok := parseHintLine(line)
		if !ok {
			continue
		}

		var value any

		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}

		hints[name] = value
	}
}

// parseHintLine splits a single comment line into a directive name and raw
// value if it matches the "x-<name>: <value>" hint form.
func parseHintLine(line string) (name, value string, ok bool) {
	stripped := strings.TrimSpace(stripCommentPrefix(line))
	if !strings.HasPrefix(stripped, hintPrefix) {
		return "", "", false
	}

	idx := strings.Index(stripped, ":")
	if idx <= 0 {
		return "", "", false
	}

	name = strings.TrimSpace(stripped[:idx])
	value = strings.TrimSpace(stripped[idx+1:])

	if name == "" || value == "" {
		return "", "", false
	}

	return name, value, true
}

// isHintComment reports whether s is recognized as a hint line, so the
// plain-description fallback in [cleanComment] can skip it.
func isHintComment(s string) bool {
	_, _, ok := parseHintLine(s)

	return ok
}
