package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeliver_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := deliver("report\n", Destination{}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "report\n" {
		t.Errorf("stdout = %q, want report", stdout.String())
	}
}

func TestDeliver_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var stdout, stderr bytes.Buffer
	if err := deliver("report\n", Destination{FilePath: path}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "report\n" {
		t.Errorf("file content = %q", string(b))
	}
	if strings.Contains(stdout.String(), "report\n") {
		t.Errorf("report leaked to stdout: %q", stdout.String())
	}
}

func TestDeliver_FileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	var stdout, stderr bytes.Buffer
	if err := deliver("report\n", Destination{FilePath: path}, &stdout, &stderr); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestDeliver_Clipboard(t *testing.T) {
	orig := clipboardWriter
	defer func() { clipboardWriter = orig }()

	var copied string
	clipboardWriter = func(s string) error {
		copied = s
		return nil
	}
	var stdout, stderr bytes.Buffer
	if err := deliver("report\n", Destination{Clipboard: true}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if copied != "report\n" {
		t.Errorf("clipboard = %q", copied)
	}

	clipboardWriter = func(string) error { return errors.New("no clipboard utilities available") }
	stdout.Reset()
	if err := deliver("report\n", Destination{Clipboard: true}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "report\n" {
		t.Errorf("fallback stdout = %q, want report", stdout.String())
	}
	if !strings.Contains(stderr.String(), "no clipboard utilities available") {
		t.Errorf("stderr = %q, want clipboard error", stderr.String())
	}
}

func TestDeliver_PDF(t *testing.T) {
	tests := []struct {
		name   string
		report string
		lexer  string
	}{
		{"table", renderTable(sampleResults()), ""},
		{"json", "[\n  {\n    \"filename\": \"café.txt\",\n    \"lines\": 1\n  }\n]\n", FormatJSON},
		{"yaml", "- filename: a.txt\n  lines: 1\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report.pdf")
			var stdout, stderr bytes.Buffer
			err := deliver(tt.report, Destination{PDFPath: path, LexerName: tt.lexer}, &stdout, &stderr)
			if err != nil {
				t.Fatal(err)
			}
			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(b, []byte("%PDF-")) {
				t.Errorf("output does not look like a PDF: %q", b[:min(len(b), 16)])
			}
		})
	}
}
