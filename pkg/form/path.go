package form

import "strings"

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// lookup resolves a dotted path. A literal key matching the whole path wins
// over nested lookup.
func lookup(values map[string]any, path string) (any, bool) {
	if values == nil || path == "" {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}
	current := any(values)
	for _, segment := range splitPath(path) {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// assign writes value at a dotted path, creating intermediate maps and
// replacing non-map intermediates.
func assign(values map[string]any, path string, value any) {
	segments := splitPath(path)
	node := values
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}
