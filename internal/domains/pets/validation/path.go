package validation

import (
	"strconv"
	"strings"
)

// lookup resolves a dotted path such as "category.id" or "tags[0].name"
// inside a decoded JSON object. A JSON null counts as missing.
func lookup(body map[string]any, path string) (any, bool) {
	var current any = body
	for _, segment := range strings.Split(path, ".") {
		name, index, indexed := splitIndex(segment)
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = obj[name]; !ok {
			return nil, false
		}
		if indexed {
			list, ok := current.([]any)
			if !ok || index >= len(list) {
				return nil, false
			}
			current = list[index]
		}
	}
	return current, current != nil
}

// splitIndex splits "tags[0]" into ("tags", 0, true).
func splitIndex(segment string) (string, int, bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}
	index, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil || index < 0 {
		return segment, 0, false
	}
	return segment[:open], index, true
}
