package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer is an interface for different tokenizer implementations.
type Tokenizer interface {
	CountTokens(text string) (int, error)
	Close()
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) (int, error) {
	if w.ttk == nil {
		return 0, nil
	}
	return len(w.ttk.EncodeOrdinary(text)), nil
}

func (w *TiktokenWrapper) Close() {}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) (int, error) {
	if w.htk == nil {
		return 0, nil
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		return 0, fmt.Errorf("huggingface tokenizer failed to encode text: %w", err)
	}
	return len(en.Tokens), nil
}

// sugarme/tokenizer has no Close/Free method.
func (w *HFTokenizerWrapper) Close() {}

// --- Tokenizer Loading Logic ---

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// TokenizerSettings selects and configures a tokenizer.
type TokenizerSettings struct {
	Type  string // tiktoken or huggingface
	Model string
	File  string // Local tokenizer.json, huggingface only
}

// getTokenizer returns a tokenizer instance for the given settings.
func getTokenizer(ts TokenizerSettings) (Tokenizer, error) {
	logger.Debug("initializing tokenizer", "type", ts.Type, "model", ts.Model, "file", ts.File)

	switch strings.ToLower(ts.Type) {
	case "", "tiktoken":
		return loadTiktoken(ts.Model)
	case "huggingface":
		return loadHuggingFace(ts.Model, ts.File)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", ts.Type)
	}
}

func loadTiktoken(model string) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("tiktoken model not found, falling back to default", "model", model, "default", defaultTiktokenModel, "error", err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(model, file string) (Tokenizer, error) {
	if file != "" {
		logger.Debug("loading huggingface tokenizer from file", "file", file)
		ttk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", file, err)
		}
		return &HFTokenizerWrapper{htk: ttk}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	logger.Debug("loading huggingface tokenizer for model (this may download files)", "model", model)

	// CachedPath downloads tokenizer.json from the Hub on first use.
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}

	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk}, nil
}
