// Package tokens implements the placeholder substitution engine used to
// instantiate shared content templates for a specific location.
//
// A marker has the form [[segment(.segment)*]] and may appear anywhere inside
// a string leaf of a content tree. Paths are resolved against a context
// record (a keyed mapping, typically a location's data). There is no escape
// mechanism for a literal "[[" sequence.
//
// Resolution is fail-open: a marker whose path cannot be resolved is left
// verbatim in the output so unresolved tokens stay visibly diagnosable
// instead of silently vanishing.
//
// Callers must only pass finite acyclic values; the resolver performs no
// cycle detection because content trees come from a trusted editor.
package tokens

import (
	"fmt"
	"regexp"
	"strings"
)

var markerPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Resolve walks a value of arbitrary shape (string, ordered sequence, or
// keyed mapping) and substitutes every [[dotted.path]] marker found inside
// string leaves with the stringified value looked up in context.
//
// The input is never mutated. Subtrees without changes are returned by
// reference, so callers can detect "nothing changed" by identity and whole
// trees pass through untouched when context is nil.
func Resolve(value any, context map[string]any) any {
	if context == nil {
		return value
	}
	resolved, _ := resolveValue(value, context)
	return resolved
}

// ContainsMarker reports whether the string carries marker syntax.
func ContainsMarker(s string) bool {
	return strings.Contains(s, "[[")
}

func resolveValue(value any, context map[string]any) (any, bool) {
	switch typed := value.(type) {
	case string:
		resolved := resolveString(typed, context)
		return resolved, resolved != typed
	case []any:
		return resolveSequence(typed, context)
	case map[string]any:
		return resolveMapping(typed, context)
	default:
		return value, false
	}
}

func resolveString(s string, context map[string]any) string {
	if !ContainsMarker(s) {
		return s
	}
	return markerPattern.ReplaceAllStringFunc(s, func(match string) string {
		path := strings.Trim(match[2:len(match)-2], ".")
		resolved, ok := lookupPath(context, path)
		if !ok || resolved == nil {
			return match
		}
		return stringify(resolved)
	})
}

func resolveSequence(seq []any, context map[string]any) (any, bool) {
	var out []any
	for i, child := range seq {
		resolved, changed := resolveValue(child, context)
		if changed && out == nil {
			out = make([]any, len(seq))
			copy(out, seq)
		}
		if out != nil && changed {
			out[i] = resolved
		}
	}
	if out == nil {
		return seq, false
	}
	return out, true
}

func resolveMapping(mapping map[string]any, context map[string]any) (any, bool) {
	var out map[string]any
	for key, child := range mapping {
		resolved, changed := resolveValue(child, context)
		if changed && out == nil {
			out = make(map[string]any, len(mapping))
			for k, v := range mapping {
				out[k] = v
			}
		}
		if out != nil && changed {
			out[key] = resolved
		}
	}
	if out == nil {
		return mapping, false
	}
	return out, true
}

// lookupPath walks the context segment by segment. Resolution fails when an
// intermediate value is not a keyed mapping or a segment key is absent.
func lookupPath(context map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = context
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, false
		}
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = mapping[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", typed)
	}
}
