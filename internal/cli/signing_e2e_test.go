//go:build !windows

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/htmlsign/internal/signer"
	"github.com/vvka-141/htmlsign/internal/ui"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// fakeGPG stands in for gpg --clearsign.
const fakeGPG = `#!/bin/sh
out=""; in=""
while [ $# -gt 0 ]; do
  case "$1" in
    --output) out="$2"; shift ;;
    --clearsign) in="$2"; shift ;;
  esac
  shift
done
{
  printf '%s\nHash: SHA256\n\n' '-----BEGIN PGP SIGNED MESSAGE-----'
  cat "$in"
  printf '\n%s\n\nc3R1Yg==\n%s\n' '-----BEGIN PGP SIGNATURE-----' '-----END PGP SIGNATURE-----'
} > "$out"
`

func installFakeGPG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gpg")
	if err := os.WriteFile(path, []byte(fakeGPG), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSignCmd_EndToEnd(t *testing.T) {
	gpg := installFakeGPG(t)
	dir := t.TempDir()
	page := "<!DOCTYPE html>\n<html><body>Hello</body></html>\n"
	input := writePage(t, dir, "index.html", page)

	stdout, _, err := executeCommand(t, "sign", "--input", input, "--gpg", gpg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stdout, input) {
		t.Errorf("Expected status line for %s, got:\n%s", input, stdout)
	}

	signed, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	out := string(signed)
	if !strings.HasPrefix(out, "<!--\n"+htmlsign.ClearSignHeader) {
		t.Errorf("Signed file does not start with the envelope:\n%s", out)
	}
	if !strings.HasSuffix(out, "-----END PGP SIGNATURE-----\n-->") {
		t.Errorf("Signed file does not end with the comment close:\n%s", out)
	}
	if !strings.Contains(out, htmlsign.DefaultMarker+" -->\n"+page+"<!--") {
		t.Errorf("Signed file does not embed the page verbatim:\n%s", out)
	}

	// A second run leaves the signed file alone.
	stdout, _, err = executeCommand(t, "sign", "--input", input, "--gpg", gpg)
	if err != nil {
		t.Fatalf("Unexpected error on second run: %v", err)
	}
	if !strings.Contains(stdout, "already signed") {
		t.Errorf("Expected skip notice, got:\n%s", stdout)
	}
	again, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != out {
		t.Error("Already signed file was modified")
	}
}

func TestSignCmd_OutputFile(t *testing.T) {
	gpg := installFakeGPG(t)
	dir := t.TempDir()
	input := writePage(t, dir, "index.html", "<p>hi</p>\n")
	output := filepath.Join(dir, "index.signed.html")

	if _, _, err := executeCommand(t, "sign", "-i", input, "-o", output, "--gpg", gpg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	original, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if string(original) != "<p>hi</p>\n" {
		t.Errorf("Input changed although --output was given: %q", original)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestSignCmd_GPGFromConfig(t *testing.T) {
	gpg := installFakeGPG(t)
	dir := t.TempDir()
	input := writePage(t, dir, "index.html", "<p>hi</p>\n")
	writePage(t, dir, "htmlsign.yaml", "gpg:\n  binary: "+gpg+"\nmarker: https://example.com/sig/\n")

	if _, _, err := executeCommand(t, "sign", "--input", input); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	signed, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(signed), "https://example.com/sig/ -->\n<p>hi</p>") {
		t.Errorf("Expected marker from htmlsign.yaml, got:\n%s", signed)
	}
}

func TestSignCmd_ThroughSymlink(t *testing.T) {
	gpg := installFakeGPG(t)
	dir := t.TempDir()
	target := writePage(t, dir, "real.html", "<p>hi</p>\n")
	link := filepath.Join(dir, "link.html")
	if err := os.Symlink("real.html", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, _, err := executeCommand(t, "sign", "--input", link, "--gpg", gpg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("Signing replaced the symlink with a regular file")
	}
	signed, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(signed), "<!--\n"+htmlsign.ClearSignHeader) {
		t.Errorf("Link target was not signed:\n%s", signed)
	}
}

// approveAll stands in for the --force countdown.
type approveAll struct{}

func (approveAll) RequestApproval(context.Context, string, int) (bool, error) { return true, nil }

func TestSignAllCmd_EndToEnd(t *testing.T) {
	newForcedApprover = func(bool) htmlsign.Approver { return approveAll{} }
	t.Cleanup(func() { newForcedApprover = ui.NewForcedApprover })

	gpg := installFakeGPG(t)
	root := t.TempDir()
	pages := map[string]string{
		"index.html":             "<!DOCTYPE html>\n<p>home</p>\n",
		"blog/post.html":         "<p>post</p>\n<hr>\n",
		"blog/2024/archive.HTML": "<p>archive</p>\n",
	}
	for name, content := range pages {
		writePage(t, root, name, content)
	}
	writePage(t, root, "blog/notes.txt", "not a page\n")
	report := filepath.Join(t.TempDir(), "report.yaml")

	stdout, _, err := executeCommand(t, "sign-all", root, "--force", "--gpg", gpg, "--report", report)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for name, content := range pages {
		path := filepath.Join(root, name)
		if !strings.Contains(stdout, path) {
			t.Errorf("Expected status line for %s, got:\n%s", path, stdout)
		}
		signed, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		out := string(signed)
		if !strings.HasPrefix(out, "<!--") || !strings.HasSuffix(out, "-->") {
			t.Errorf("%s is not wrapped in an HTML comment:\n%s", name, out)
		}
		if !strings.Contains(out, string(signer.DashEscape([]byte(content)))) {
			t.Errorf("%s does not embed its content:\n%s", name, out)
		}
	}

	notes, err := os.ReadFile(filepath.Join(root, "blog", "notes.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(notes) != "not a page\n" {
		t.Error("Non-matching file was modified")
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("Expected report: %v", err)
	}
	for name := range pages {
		if !strings.Contains(string(data), filepath.Join(root, name)) {
			t.Errorf("Report does not mention %s:\n%s", name, data)
		}
	}
}
