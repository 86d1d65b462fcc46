package signer

import (
	"bytes"
	"fmt"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// Prepare returns the text handed to the signing tool for content.
func Prepare(marker string, content []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(marker) + len(content) + 16)
	buf.WriteString(marker)
	buf.WriteString(" " + htmlsign.CommentClose + "\n")
	buf.Write(content)
	buf.WriteString(htmlsign.CommentOpen)
	return buf.Bytes()
}

// Envelope wraps the signing tool's output in an HTML comment. The final
// byte of signed (the armor's trailing newline) is dropped.
func Envelope(signed []byte) ([]byte, error) {
	if len(signed) == 0 {
		return nil, fmt.Errorf("signing tool produced no output: %w", htmlsign.ErrInvalidSignedOutput)
	}

	var buf bytes.Buffer
	buf.Grow(len(signed) + 8)
	buf.WriteString(htmlsign.CommentOpen + "\n")
	buf.Write(signed[:len(signed)-1])
	buf.WriteString("\n" + htmlsign.CommentClose)
	return buf.Bytes(), nil
}

// IsSigned reports whether content already starts with a clear-signed envelope.
func IsSigned(content []byte) bool {
	rest, ok := bytes.CutPrefix(content, []byte(htmlsign.CommentOpen))
	if !ok {
		return false
	}
	rest = bytes.TrimLeft(rest, "\r\n")
	return bytes.HasPrefix(rest, []byte(htmlsign.ClearSignHeader))
}

// Verify checks that output is a well-formed envelope around content.
// Lines of content starting with a dash are expected in their dash-escaped
// form, which is how clear-signed text carries them.
func Verify(content, output []byte) error {
	if !bytes.HasPrefix(output, []byte(htmlsign.CommentOpen)) {
		return fmt.Errorf("output does not start with %s: %w", htmlsign.CommentOpen, htmlsign.ErrInvalidSignedOutput)
	}
	if !bytes.HasSuffix(output, []byte(htmlsign.CommentClose)) {
		return fmt.Errorf("output does not end with %s: %w", htmlsign.CommentClose, htmlsign.ErrInvalidSignedOutput)
	}
	if !bytes.Contains(output, DashEscape(content)) {
		return fmt.Errorf("output does not contain the original content: %w", htmlsign.ErrInvalidSignedOutput)
	}
	return nil
}

// DashEscape prefixes every line that starts with '-' with "- ".
func DashEscape(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("-")) && !bytes.Contains(content, []byte("\n-")) {
		return content
	}

	lines := bytes.SplitAfter(content, []byte("\n"))
	var buf bytes.Buffer
	buf.Grow(len(content) + 2*len(lines))
	for _, line := range lines {
		if bytes.HasPrefix(line, []byte("-")) {
			buf.WriteString("- ")
		}
		buf.Write(line)
	}
	return buf.Bytes()
}
