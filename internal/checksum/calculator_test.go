package checksum

import (
	"testing"
)

func TestSHA256_Calculate(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Calculate([]byte(tt.content)); got != tt.expected {
				t.Errorf("Calculate(%q) = %s, want %s", tt.content, got, tt.expected)
			}
		})
	}
}

func TestSHA256_Calculate_Deterministic(t *testing.T) {
	calc := New()
	content := []byte("<html><body>hello</body></html>")

	first := calc.Calculate(content)
	if len(first) != 64 {
		t.Fatalf("Calculate() returned hash of length %d, expected 64", len(first))
	}
	if second := calc.Calculate(content); first != second {
		t.Errorf("Calculate() is not deterministic: %s != %s", first, second)
	}
}

func TestSHA256_Calculate_WhitespaceMatters(t *testing.T) {
	calc := New()
	if calc.Calculate([]byte("<p>a</p>")) == calc.Calculate([]byte("<p>a</p>\n")) {
		t.Error("trailing newline must change the digest")
	}
}
