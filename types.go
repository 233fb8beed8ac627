package main

// Counts holds the three metrics computed for one piece of text.
type Counts struct {
	Lines uint
	Words uint
	Chars uint
}

// InputResult holds the counts for a single processed input.
// Label is the specifier as given on the command line ("-" for stdin).
type InputResult struct {
	Label  string `json:"filename" yaml:"filename"`
	Lines  uint   `json:"lines" yaml:"lines"`
	Words  uint   `json:"words" yaml:"words"`
	Chars  uint   `json:"chars" yaml:"chars"`
	Tokens *uint  `json:"tokens,omitempty" yaml:"tokens,omitempty"` // Only set when token counting is enabled
}

// newInputResult builds the result for label from its counts.
func newInputResult(label string, c Counts) InputResult {
	return InputResult{Label: label, Lines: c.Lines, Words: c.Words, Chars: c.Chars}
}

// withTokens returns a copy of r carrying a token count.
func (r InputResult) withTokens(n uint) InputResult {
	r.Tokens = &n
	return r
}

// Structured output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DisplayConfig controls how the Reporter renders results.
type DisplayConfig struct {
	ShowLines  bool
	ShowWords  bool
	ShowChars  bool
	ShowTokens bool
	Structured bool
	Format     string // FormatJSON or FormatYAML, only used when Structured
}

// selective reports whether any single-metric flag is set.
func (c DisplayConfig) selective() bool {
	return c.ShowLines || c.ShowWords || c.ShowChars || c.ShowTokens
}
