package main

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Count reads r to completion, decodes it with dec and counts the text.
// A nil dec means strict UTF-8.
func Count(r io.Reader, dec Decoder) (Counts, string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Counts{}, "", readFailure(err)
	}
	if dec == nil {
		dec = utf8Decoder{}
	}
	text, err := dec.Decode(raw)
	if err != nil {
		return Counts{}, "", decodeFailure(err)
	}
	return CountText(text), text, nil
}

// CountText counts lines, words and characters of already decoded text.
func CountText(text string) Counts {
	return Counts{
		Lines: countLines(text),
		Words: uint(len(strings.Fields(text))),
		Chars: uint(utf8.RuneCountInString(text)),
	}
}

// countLines counts line breaks, plus one for a final line with no terminator.
func countLines(text string) uint {
	if text == "" {
		return 0
	}
	n := uint(strings.Count(text, "\n"))
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
