package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Destination says where a finished report goes. The first set field wins:
// PDF, then file, then clipboard, then stdout.
type Destination struct {
	PDFPath   string
	FilePath  string
	Clipboard bool
	LexerName string // Highlighting for PDF output of structured reports
}

// clipboardWriter is swapped out in tests.
var clipboardWriter = clipboard.WriteAll

// deliver writes report to its destination. stdout receives the report when
// no other destination is chosen, and short notices otherwise.
func deliver(report string, d Destination, stdout, stderr io.Writer) error {
	switch {
	case d.PDFPath != "":
		if err := generatePDF(report, d.LexerName, d.PDFPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Output saved to %s\n", d.PDFPath)
	case d.FilePath != "":
		if err := os.WriteFile(d.FilePath, []byte(report), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", d.FilePath, err)
		}
		fmt.Fprintf(stdout, "Output saved to %s\n", d.FilePath)
	case d.Clipboard:
		if err := clipboardWriter(report); err != nil {
			fmt.Fprintf(stderr, "Error writing to clipboard: %v\n", err)
			_, err = io.WriteString(stdout, report)
			return err
		}
		fmt.Fprintln(stdout, "Output copied to clipboard.")
	default:
		_, err := io.WriteString(stdout, report)
		return err
	}
	return nil
}
