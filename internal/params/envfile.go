package params

import (
	"bytes"
	"fmt"

	"github.com/joho/godotenv"
)

// ParseEnvFile parses environment file content in .env format.
// It returns a map of key-value pairs.
//
// Parsing is delegated to godotenv: comments, blank lines, `export`
// prefixes, quoted values and ${VAR} expansion within the file all work.
func ParseEnvFile(content []byte) (map[string]string, error) {
	env, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid env file: %w", err)
	}
	return env, nil
}

// Merge combines layers into a new map; later layers win.
func Merge(layers ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			result[k] = v
		}
	}
	return result
}
