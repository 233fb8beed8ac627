package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4 // Number of spaces for a tab
)

// generatePDF writes the rendered report to outputPath in a monospace font,
// so table columns keep their alignment. A non-empty lexerName (json, yaml)
// turns on syntax highlighting for structured reports.
func generatePDF(report, lexerName, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented labels survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)

	if lexerName == "" {
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, tr(report), "", "L", false)
	} else if err := writeHighlighted(pdf, tr, report, lexerName); err != nil {
		logger.Warn("syntax highlighting failed, writing plain text", "lexer", lexerName, "error", err)
		pdf.SetFont("Courier", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, tr(report), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

// writeHighlighted tokenizes content with the named chroma lexer and writes
// each token in its style colour.
func writeHighlighted(pdf *gofpdf.Fpdf, tr func(string) string, content, lexerName string) error {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return fmt.Errorf("no lexer for %s", lexerName)
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	pdf.SetFont("Courier", "", pdfFontSize)
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		styleStr := ""
		if entry.Bold == chroma.Yes {
			styleStr += "B"
		}
		if entry.Italic == chroma.Yes {
			styleStr += "I"
		}
		pdf.SetFontStyle(styleStr)

		colour := entry.Colour
		if !colour.IsSet() {
			colour = style.Get(chroma.Text).Colour
		}
		if colour.IsSet() {
			pdf.SetTextColor(int(colour.Red()), int(colour.Green()), int(colour.Blue()))
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		value := strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))
		pdf.Write(pdfLineHeight, tr(value))
	}
	pdf.Ln(-1)

	return pdf.Error()
}
