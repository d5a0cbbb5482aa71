package attrs

// ExtractString extracts a string value from a key-value attribute slice.
// The slice should be formatted as [key1, value1, key2, value2, ...].
// Returns empty string if the key is not found or the value is not a string.
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if k == key {
			if v, ok := attrs[i+1].(string); ok {
				return v
			}
		}
	}
	return ""
}

// ExtractFloat64 extracts a float64 value from a key-value attribute slice.
// Returns 0 and false if the key is not found or the value is not a float64.
func ExtractFloat64(attrs []any, key string) (float64, bool) {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if k == key {
			if v, ok := attrs[i+1].(float64); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// Collect converts a key-value attribute slice into a map for serialization.
// Non-string keys are skipped; a trailing key without a value is dropped.
// Later duplicates win.
func Collect(attrs []any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]any, len(attrs)/2)
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		m[k] = attrs[i+1]
	}
	return m
}
