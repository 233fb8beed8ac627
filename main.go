package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Metric selection
	showLines  bool
	showWords  bool
	showChars  bool
	showTokens bool

	// Structured output
	jsonOutput bool
	yamlOutput bool

	// Decoding
	inputEncoding string

	// Token Counting
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	// Output destination
	outputFile      string
	copyToClipboard bool
	pdfOutputFile   string

	// Interactive Mode
	interactiveMode bool
	noIgnore        bool

	verbose bool
	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

// logger carries debug traces; it discards unless --verbose is set.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// pickInputs supplies input paths in interactive mode.
var pickInputs = runInteractiveFinder

var rootCmd = &cobra.Command{
	Use:   "tally [FILES...]",
	Short: "Count lines, words and characters of files or standard input.",
	Long: `tally reports line, word and character counts for each input, in order.
Use "-" to read standard input. Output is a table, a single metric per input
(--lines, --words, --chars, --tokens) or a structured document (--json, --yaml).`,
	Version: version,
	Args: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("interactive") {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return run(loadSettings(), args, osSources(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tally/config.toml)")

	// Metric selection
	rootCmd.Flags().BoolVarP(&showLines, "lines", "l", false, "Print only the line count")
	viper.BindPFlag("lines", rootCmd.Flags().Lookup("lines"))
	rootCmd.Flags().BoolVarP(&showWords, "words", "w", false, "Print only the word count")
	viper.BindPFlag("words", rootCmd.Flags().Lookup("words"))
	rootCmd.Flags().BoolVarP(&showChars, "chars", "c", false, "Print only the character count")
	viper.BindPFlag("chars", rootCmd.Flags().Lookup("chars"))
	rootCmd.Flags().BoolVarP(&showTokens, "tokens", "t", false, "Count model tokens and print only the token count")
	viper.BindPFlag("tokens", rootCmd.Flags().Lookup("tokens"))

	// Structured output
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results as JSON")
	viper.BindPFlag("json", rootCmd.Flags().Lookup("json"))
	rootCmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output results as YAML")
	viper.BindPFlag("yaml", rootCmd.Flags().Lookup("yaml"))

	// Decoding
	rootCmd.Flags().StringVarP(&inputEncoding, "encoding", "e", defaultEncoding, "Text encoding of the inputs (e.g. utf-8, shift_jis, utf-16le)")
	viper.BindPFlag("encoding", rootCmd.Flags().Lookup("encoding"))

	// Token Counting
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	// Output destination
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Save output to specified file")
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	rootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy output to clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save output as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick input files with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore when listing files in interactive mode")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug information to stderr")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("encoding", defaultEncoding)
	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("model", "")
	viper.SetDefault("lines", false)
	viper.SetDefault("words", false)
	viper.SetDefault("chars", false)
	viper.SetDefault("tokens", false)
	viper.SetDefault("json", false)
	viper.SetDefault("yaml", false)
	viper.SetDefault("interactive", false)
	viper.SetDefault("no_ignore", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "tally"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("TALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match TALLY_*

	// verbose may come from the config file, so read it before picking a logger.
	readErr := viper.ReadInConfig()
	if viper.GetBool("verbose") {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if readErr == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
		return
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(readErr, &notFound) {
		logger.Debug("no config file found, using defaults and flags")
	} else {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", readErr)
	}
}

// Settings is the resolved configuration for one run.
type Settings struct {
	Display     DisplayConfig
	Encoding    string
	Tokenizer   TokenizerSettings
	Destination Destination
	Interactive bool
	NoIgnore    bool
}

// loadSettings snapshots viper's merged view of defaults, config, env and flags.
func loadSettings() Settings {
	s := Settings{
		Display: DisplayConfig{
			ShowLines:  viper.GetBool("lines"),
			ShowWords:  viper.GetBool("words"),
			ShowChars:  viper.GetBool("chars"),
			ShowTokens: viper.GetBool("tokens"),
			Structured: viper.GetBool("json") || viper.GetBool("yaml"),
			Format:     FormatJSON,
		},
		Encoding: viper.GetString("encoding"),
		Tokenizer: TokenizerSettings{
			Type:  viper.GetString("tokenizer"),
			Model: viper.GetString("model"),
			File:  viper.GetString("tokenizer_file"),
		},
		Destination: Destination{
			PDFPath:   viper.GetString("pdf"),
			FilePath:  viper.GetString("file"),
			Clipboard: viper.GetBool("clipboard"),
		},
		Interactive: viper.GetBool("interactive"),
		NoIgnore:    viper.GetBool("no_ignore"),
	}
	if !viper.GetBool("json") && viper.GetBool("yaml") {
		s.Display.Format = FormatYAML
	}
	if s.Display.Structured {
		s.Destination.LexerName = s.Display.Format
	}
	return s
}

// run counts every input and delivers a single report. Nothing is written
// to the report destination unless every input was counted.
func run(s Settings, args []string, src Sources, stdout, stderr io.Writer) error {
	specs := args
	if s.Interactive && len(specs) == 0 {
		picked, err := pickInputs(s.NoIgnore)
		if err != nil {
			return fmt.Errorf("interactive mode error: %w", err)
		}
		if picked == nil {
			return nil
		}
		specs = picked
	}

	dec, err := newDecoder(s.Encoding)
	if err != nil {
		return err
	}

	opts := CountOptions{Decoder: dec}
	if s.Display.ShowTokens {
		tk, err := getTokenizer(s.Tokenizer)
		if err != nil {
			return fmt.Errorf("error initializing tokenizer: %w", err)
		}
		defer tk.Close()
		opts.Tokenizer = tk
	}

	logger.Debug("processing inputs", "count", len(specs), "encoding", dec.Name())
	results, err := processInputs(specs, src, opts)
	if err != nil {
		return err
	}

	report, err := Render(results, s.Display)
	if err != nil {
		return err
	}
	return deliver(report, s.Destination, stdout, stderr)
}

// printError writes the diagnostic for a failed run.
func printError(w io.Writer, err error) {
	var ie *InputError
	if errors.As(err, &ie) {
		fmt.Fprintf(w, "Error processing %s: %v\n", ie.Label, ie.Err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
