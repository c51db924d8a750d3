package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/vardata-go/pkg/vardata"
	"github.com/ukaji3/vardata-go/pkg/vardata/parser"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		defaultVal := field.Tag.Get("default")

		if envName == "" {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("VARDATA_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("VARDATA_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Batch.FilenameTemplate == "" {
		errs = append(errs, "VARDATA_FILENAME_TEMPLATE must not be empty")
	}
	if _, err := vardata.ParseSchemaVersion(c.Batch.SchemaVersion); err != nil {
		errs = append(errs, fmt.Sprintf("VARDATA_SCHEMA_VERSION: %v", err))
	}
	if c.Batch.CombinedFilename != "" {
		if err := vardata.ValidateFilename(c.Batch.CombinedFilename); err != nil {
			errs = append(errs, fmt.Sprintf("VARDATA_COMBINED_FILENAME: %v", err))
		}
	}
	if _, err := parser.ParseDelimiter(c.Batch.CSVDelimiter); err != nil {
		errs = append(errs, fmt.Sprintf("VARDATA_CSV_DELIMITER: %v", err))
	}

	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		errs = append(errs, fmt.Sprintf("VARDATA_JPEG_QUALITY (%d) must be 1-100", c.Export.JPEGQuality))
	}
	if c.Export.DPI <= 0 {
		errs = append(errs, "VARDATA_DPI must be positive")
	}

	if c.Watch.Debounce <= 0 {
		errs = append(errs, "VARDATA_WATCH_DEBOUNCE must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for debug logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}, ", c.Logging.Level, c.Logging.Format))
	b.WriteString(fmt.Sprintf("Batch: {FilenameTemplate: %q, SchemaVersion: %q, CombinedFilename: %q, CSVDelimiter: %q}, ",
		c.Batch.FilenameTemplate, c.Batch.SchemaVersion, c.Batch.CombinedFilename, c.Batch.CSVDelimiter))
	b.WriteString(fmt.Sprintf("Export: {JPEGQuality: %d, DPI: %d}, ", c.Export.JPEGQuality, c.Export.DPI))
	b.WriteString(fmt.Sprintf("Watch: {Debounce: %s}", c.Watch.Debounce))
	b.WriteString("}")
	return b.String()
}
