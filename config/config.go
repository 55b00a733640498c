package config

import (
	"github.com/customeros/mailsweep/internal/logger"
	"github.com/customeros/mailsweep/internal/tracing"
)

type AppConfig struct {
	// AccountsPath is the default accounts file location; the --config CLI
	// flag overrides it.
	AccountsPath string `env:"MAILSWEEP_CONFIG" envDefault:"accounts.json"`
	// ChunkSize bounds each UID range search when enumerating large folders.
	ChunkSize int `env:"MAILSWEEP_CHUNK_SIZE" envDefault:"5000"`
	// PreviewChars bounds the body preview shown at the confirmation prompt.
	PreviewChars int `env:"MAILSWEEP_PREVIEW_CHARS" envDefault:"200"`
	// SubjectWidth bounds subjects in per-message console output.
	SubjectWidth int `env:"MAILSWEEP_SUBJECT_WIDTH" envDefault:"60"`

	Logger *logger.Config
	Jaeger *tracing.JaegerConfig
}
