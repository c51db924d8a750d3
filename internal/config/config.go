// Package config provides centralized configuration for the vardata CLI.
// It loads settings from environment variables with defaults and validates
// them so a bad setting fails before any document is generated. Command
// line flags override the loaded values.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Batch   BatchConfig
	Export  ExportConfig
	Watch   WatchConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"VARDATA_LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"VARDATA_LOG_FORMAT" default:"text"`
}

// BatchConfig holds defaults for batch runs.
type BatchConfig struct {
	// FilenameTemplate names each output; $n is the data row (default: variant_$n.pdf)
	FilenameTemplate string `env:"VARDATA_FILENAME_TEMPLATE" default:"variant_$n.pdf"`

	// SchemaVersion is current or legacy (default: current)
	SchemaVersion string `env:"VARDATA_SCHEMA_VERSION" default:"current"`

	// CombinedFilename enables the combined PDF when set
	CombinedFilename string `env:"VARDATA_COMBINED_FILENAME"`

	// CSVDelimiter overrides the delimiter of text datasets
	CSVDelimiter string `env:"VARDATA_CSV_DELIMITER"`
}

// ExportConfig holds rendering and file output settings.
type ExportConfig struct {
	// JPEGQuality is the quality of .jpg exports, 1-100 (default: 90)
	JPEGQuality int `env:"VARDATA_JPEG_QUALITY" default:"90"`

	// DPI maps canvas pixels to PDF points (default: 72)
	DPI int `env:"VARDATA_DPI" default:"72"`
}

// WatchConfig holds settings of the watch command.
type WatchConfig struct {
	// Debounce is how long to wait for more changes before re-running (default: 500ms)
	Debounce time.Duration `env:"VARDATA_WATCH_DEBOUNCE" default:"500ms"`
}
