package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
//
// Example:
//
//	env, err := ParseKeyValuePairs([]string{"GNUPGHOME=/secure/gnupg", "LANG=C"})
//	// Returns: map[string]string{"GNUPGHOME": "/secure/gnupg", "LANG": "C"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%q is not in KEY=VALUE format (example: --env GNUPGHOME=/secure/gnupg)", pair)
		}

		if key == "" {
			return nil, fmt.Errorf("empty key in %q", pair)
		}

		result[key] = value
	}

	return result, nil
}
