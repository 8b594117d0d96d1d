// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// StoreBackend selects how the model is persisted.
type StoreBackend string

const (
	BackendJSON   StoreBackend = "json"
	BackendSQLite StoreBackend = "sqlite"
)

// TokenizerKind selects how learned text is split into words.
type TokenizerKind string

const (
	TokenizerWhitespace TokenizerKind = "whitespace"
	TokenizerJapanese   TokenizerKind = "japanese"
)

const (
	// DefaultMaxAttempts is how many times the generator retries a chain
	// position before giving up on it.
	DefaultMaxAttempts = 10

	// DefaultTolerancePercent is the default width of the commonality band.
	DefaultTolerancePercent = 75

	// DefaultMinWords is the shortest sentence WriteText draws.
	DefaultMinWords = 4

	// DefaultStripChars are trimmed from both ends of every token.
	DefaultStripChars = `.,!?;:"'()[]{}<>*_~-“”‘’«»`

	MinTolerancePercent = 1
	MaxTolerancePercent = 100
)

// DictionaryConfig locates the persisted model.
type DictionaryConfig struct {
	// Path is the dictionary file (JSON) or database (SQLite).
	Path string `json:"path" yaml:"path" validate:"required"`

	// Backend selects the storage format: json or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend" validate:"oneof=json sqlite"`
}

// LogConfig controls the console and debug log.
type LogConfig struct {
	// Debug enables the append-only debug log file.
	Debug bool `json:"debug" yaml:"debug"`

	// File is the debug log path, used only when Debug is set.
	File string `json:"file" yaml:"file" validate:"required_if=Debug true"`

	// Quiet suppresses the console echo of log lines.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// GeneratorConfig holds the sentence generation knobs.
type GeneratorConfig struct {
	// MaxAttempts bounds the retries per chain position (default 10).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" validate:"min=1"`

	// TolerancePercent is how far below the most common continuation a
	// word may fall and remain eligible. Values outside 1-100 are clamped.
	TolerancePercent int `json:"tolerance_percent" yaml:"tolerance_percent"`

	// MinWords is the lower bound of the per-sentence length draw (default 4).
	MinWords int `json:"min_words" yaml:"min_words" validate:"min=1"`
}

// LearnConfig holds tokenization settings for learning.
type LearnConfig struct {
	// StripChars are removed from the start and end of each token.
	StripChars string `json:"strip_chars" yaml:"strip_chars"`

	// Tokenizer selects whitespace (default) or japanese segmentation.
	Tokenizer TokenizerKind `json:"tokenizer" yaml:"tokenizer" validate:"oneof=whitespace japanese"`
}

// HTTPConfig holds shared HTTP settings used by network ingestion sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" validate:"required"`

	// MaxRetries is the number of retries on rate limiting (0 = default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" validate:"gte=0"`
}

// Config groups every setting mercer reads at startup.
type Config struct {
	Dictionary DictionaryConfig `json:"dictionary" yaml:"dictionary"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Generator  GeneratorConfig  `json:"generator" yaml:"generator"`
	Learn      LearnConfig      `json:"learn" yaml:"learn"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Dictionary: DictionaryConfig{
			Path:    "dictionary.mercer",
			Backend: BackendJSON,
		},
		Log: LogConfig{
			File: "mercerDebugLog.txt",
		},
		Generator: DefaultGeneratorConfig(),
		Learn: LearnConfig{
			StripChars: DefaultStripChars,
			Tokenizer:  TokenizerWhitespace,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "mercer/0.1 (text generator)",
		},
	}
}

// DefaultGeneratorConfig returns the default generation knobs.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxAttempts:      DefaultMaxAttempts,
		TolerancePercent: DefaultTolerancePercent,
		MinWords:         DefaultMinWords,
	}
}

// ClampTolerance limits p to the legal 1-100 range.
func ClampTolerance(p int) int {
	if p < MinTolerancePercent {
		return MinTolerancePercent
	}
	if p > MaxTolerancePercent {
		return MaxTolerancePercent
	}
	return p
}

var validate = validator.New()

// Validate checks every section against its constraints. The tolerance
// percentage is not validated; callers clamp it with ClampTolerance.
func (c Config) Validate() error {
	return validateStruct(c)
}

// Validate checks the generator knobs.
func (g GeneratorConfig) Validate() error {
	return validateStruct(g)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
