package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"
)

// columnWidth is the display width of every table column.
const columnWidth = 12

const ellipsis = "..."

// cellWidth measures terminal cells independent of the user's locale,
// so ambiguous-width runes always count as one cell.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Render formats results according to cfg. Structured output wins over
// everything else, then the single-metric mode, then the table.
func Render(results []InputResult, cfg DisplayConfig) (string, error) {
	if cfg.Structured {
		return renderStructured(results, cfg.Format)
	}
	if !cfg.selective() {
		return renderTable(results), nil
	}
	return renderSelected(results, cfg), nil
}

// renderTable writes the FILE/LINES/WORDS/CHARS table.
func renderTable(results []InputResult) string {
	var builder strings.Builder
	writeRow(&builder, "FILE", "LINES", "WORDS", "CHARS")
	writeRow(&builder, "----", "-----", "-----", "-----")
	for _, r := range results {
		writeRow(&builder,
			fitLabel(r.Label),
			strconv.FormatUint(uint64(r.Lines), 10),
			strconv.FormatUint(uint64(r.Words), 10),
			strconv.FormatUint(uint64(r.Chars), 10),
		)
	}
	return builder.String()
}

// writeRow right-aligns each cell in a columnWidth field, one space apart.
func writeRow(builder *strings.Builder, cells ...string) {
	for i, cell := range cells {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(cellWidth.FillLeft(cell, columnWidth))
	}
	builder.WriteByte('\n')
}

// fitLabel shortens labels wider than a column, keeping the end of the path.
// It cuts between grapheme clusters so combining marks and emoji sequences stay whole.
func fitLabel(label string) string {
	label = printableLabel(label)
	if cellWidth.StringWidth(label) <= columnWidth {
		return label
	}

	var clusters []string
	g := uniseg.NewGraphemes(label)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	budget := columnWidth - len(ellipsis)
	width, i := 0, len(clusters)
	for i > 0 {
		w := cellWidth.StringWidth(clusters[i-1])
		if width+w > budget {
			break
		}
		width += w
		i--
	}
	return ellipsis + strings.Join(clusters[i:], "")
}

// printableLabel replaces control characters with '?', as ls does, so a
// label can never break a report line.
func printableLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, label)
}

// renderSelected emits one "<label>: <count> <unit>" line per result.
func renderSelected(results []InputResult, cfg DisplayConfig) string {
	var builder strings.Builder
	for _, r := range results {
		n, unit := selectMetric(r, cfg)
		fmt.Fprintf(&builder, "%s: %d %s\n", printableLabel(r.Label), n, unit)
	}
	return builder.String()
}

// selectMetric picks exactly one metric: lines, then words, then chars, then tokens.
func selectMetric(r InputResult, cfg DisplayConfig) (uint, string) {
	switch {
	case cfg.ShowLines:
		return r.Lines, "lines"
	case cfg.ShowWords:
		return r.Words, "words"
	case cfg.ShowChars:
		return r.Chars, "chars"
	default:
		var n uint
		if r.Tokens != nil {
			n = *r.Tokens
		}
		return n, "tokens"
	}
}

// renderStructured serializes every result, in order, as an indented document.
func renderStructured(results []InputResult, format string) (string, error) {
	if results == nil {
		results = []InputResult{}
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return "", fmt.Errorf("failed to encode results as JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return "", fmt.Errorf("failed to encode results as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to encode results as YAML: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported structured format: %s", format)
	}
	return buf.String(), nil
}
