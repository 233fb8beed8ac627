package main

import (
	"io"
	"os"
)

// stdinSpecifier is the input specifier that names standard input.
const stdinSpecifier = "-"

// Sources supplies the streams behind input specifiers.
type Sources struct {
	Stdin io.Reader
	Open  func(name string) (io.ReadCloser, error)
}

// osSources reads stdin and opens files from the local filesystem.
func osSources() Sources {
	return Sources{
		Stdin: os.Stdin,
		Open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// CountOptions carries the per-run collaborators used while counting.
type CountOptions struct {
	Decoder   Decoder
	Tokenizer Tokenizer // nil disables token counting
}

// processInputs counts every input in order. The first failure discards
// all results gathered so far and is returned as an *InputError.
func processInputs(specs []string, src Sources, opts CountOptions) ([]InputResult, error) {
	results := make([]InputResult, 0, len(specs))
	for _, spec := range specs {
		res, err := processInput(spec, src, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// processInput opens, counts and releases a single input.
// Stdin is read but never closed, so a repeated "-" reads an exhausted stream.
func processInput(spec string, src Sources, opts CountOptions) (InputResult, error) {
	var r io.Reader
	if spec == stdinSpecifier {
		r = src.Stdin
	} else {
		f, err := src.Open(spec)
		if err != nil {
			return InputResult{}, &InputError{Label: spec, Kind: ErrOpen, Err: err}
		}
		defer f.Close()
		r = f
	}

	counts, text, err := Count(r, opts.Decoder)
	if err != nil {
		return InputResult{}, labelError(spec, err)
	}
	res := newInputResult(spec, counts)

	if opts.Tokenizer != nil {
		n, err := opts.Tokenizer.CountTokens(text)
		if err != nil {
			return InputResult{}, &InputError{Label: spec, Kind: ErrTokenize, Err: err}
		}
		res = res.withTokens(uint(n))
	}

	logger.Debug("counted input", "input", spec, "lines", res.Lines, "words", res.Words, "chars", res.Chars)
	return res, nil
}
