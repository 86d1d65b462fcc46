package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "Simple key-value pairs",
			content:  "GNUPGHOME=/secure/gnupg\nLANG=C\n",
			expected: map[string]string{"GNUPGHOME": "/secure/gnupg", "LANG": "C"},
		},
		{
			name:     "Quoted values",
			content:  "NAME=\"Release Signing\"\nTTY='/dev/pts/1'\n",
			expected: map[string]string{"NAME": "Release Signing", "TTY": "/dev/pts/1"},
		},
		{
			name:     "Comments and empty lines",
			content:  "# signing environment\n\nLANG=C\n# trailing comment\n",
			expected: map[string]string{"LANG": "C"},
		},
		{
			name:     "Export prefix",
			content:  "export GNUPGHOME=/secure/gnupg\n",
			expected: map[string]string{"GNUPGHOME": "/secure/gnupg"},
		},
		{
			name:     "Expansion within the file",
			content:  "BASE=/secure\nGNUPGHOME=${BASE}/gnupg\n",
			expected: map[string]string{"BASE": "/secure", "GNUPGHOME": "/secure/gnupg"},
		},
		{
			name:     "Empty content",
			content:  "",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseEnvFile([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		map[string]string{"LANG": "C", "GNUPGHOME": "/yaml"},
		nil,
		map[string]string{"GNUPGHOME": "/file"},
		map[string]string{"GPG_TTY": "/dev/pts/0"},
	)
	assert.Equal(t, map[string]string{
		"LANG":      "C",
		"GNUPGHOME": "/file",
		"GPG_TTY":   "/dev/pts/0",
	}, got)
}
