package util

// FirstNonEmpty walks values in order and returns the first one that is
// not the empty string.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CloneStringMap copies input into a fresh map so callers can mutate the
// result without touching the source. A nil input yields an empty map.
func CloneStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}

// CloneAnyMap shallow-copies raw when it is one of the map shapes produced
// by frontmatter decoding. Anything else yields an empty map.
func CloneAnyMap(raw any) map[string]any {
	out := make(map[string]any)
	switch m := raw.(type) {
	case map[string]any:
		for k, v := range m {
			out[k] = v
		}
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
