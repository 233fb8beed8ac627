package main

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const defaultEncoding = "utf-8"

// Decoder turns raw input bytes into text.
type Decoder interface {
	Decode(b []byte) (string, error)
	Name() string
}

// utf8Decoder is strict: any invalid sequence is an error, never a replacement character.
type utf8Decoder struct{}

func (utf8Decoder) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("stream did not contain valid UTF-8 (invalid byte at offset %d)", firstInvalid(b))
	}
	return string(b), nil
}

func (utf8Decoder) Name() string { return defaultEncoding }

// textDecoder wraps a golang.org/x/text encoding such as Shift_JIS or UTF-16.
type textDecoder struct {
	name string
	enc  encoding.Encoding
}

// Decode is strict like utf8Decoder. x/text substitutes U+FFFD for malformed
// input, so any replacement character must survive re-encoding to the exact
// input bytes; otherwise it stands for bytes that were not valid text.
func (d textDecoder) Decode(b []byte) (string, error) {
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("could not decode %s text: %w", d.name, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%s decoder produced invalid text", d.name)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, err := d.enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(back, b) {
			return "", fmt.Errorf("stream did not contain valid %s text", d.name)
		}
	}
	return string(out), nil
}

func (d textDecoder) Name() string { return d.name }

// newDecoder resolves an encoding label (WHATWG names and aliases, case-insensitive).
func newDecoder(name string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return utf8Decoder{}, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}
	return textDecoder{name: canonical, enc: enc}, nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
