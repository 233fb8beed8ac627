package main

import (
	"testing"
)

func TestNewDecoder_UTF8Aliases(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF-8", "utf8", " utf-8 "} {
		dec, err := newDecoder(name)
		if err != nil {
			t.Fatalf("newDecoder(%q): %v", name, err)
		}
		if dec.Name() != "utf-8" {
			t.Errorf("newDecoder(%q).Name() = %q, want utf-8", name, dec.Name())
		}
	}
}

func TestNewDecoder_Unknown(t *testing.T) {
	if _, err := newDecoder("klingon"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestDecoders(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		input    []byte
		want     string
	}{
		{"utf-8", "utf-8", []byte("h\u00e9llo"), "h\u00e9llo"},
		{"shift_jis", "shift_jis", []byte{0x93, 0xFA, 0x96, 0x7B}, "日本"},
		{"utf-16le", "utf-16le", []byte{0x68, 0x00, 0x69, 0x00}, "hi"},
		{"windows-1252", "windows-1252", []byte{0x63, 0x61, 0x66, 0xE9}, "caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := newDecoder(tt.encoding)
			if err != nil {
				t.Fatal(err)
			}
			got, err := dec.Decode(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF8Decoder_Invalid(t *testing.T) {
	_, err := utf8Decoder{}.Decode([]byte("ab\xffc"))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if got := firstInvalid([]byte("ab\xffc")); got != 2 {
		t.Errorf("firstInvalid = %d, want 2", got)
	}
}

func TestTextDecoder_Strict(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		input    []byte
		wantErr  bool
	}{
		{"shift_jis truncated lead byte", "shift_jis", []byte{0x61, 0x93}, true},
		{"utf-16le odd length", "utf-16le", []byte{0x68, 0x00, 0x69}, true},
		{"utf-16le real replacement character", "utf-16le", []byte{0xFD, 0xFF}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := newDecoder(tt.encoding)
			if err != nil {
				t.Fatal(err)
			}
			_, err = dec.Decode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode(% x) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
