package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	Report    ReportConfig    `toml:"report"`
	Schedules SchedulesConfig `toml:"schedules"`
	Scenario  ScenarioConfig  `toml:"scenario"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Addr is the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	Dir        string   `toml:"dir"`         // Directory for the log file when "file" output is enabled
	TimeFormat string   `toml:"time_format"` // Time format for console and file lines
}

// ReportConfig carries the fixed text printed on every generated report.
type ReportConfig struct {
	Title      string `toml:"title"`
	Subtitle   string `toml:"subtitle"`
	Footer     string `toml:"footer"`
	Author     string `toml:"author"`
	Disclaimer string `toml:"disclaimer"`
}

type SchedulesConfig struct {
	URL string `toml:"url"` // Optional remote price list; embedded schedules are used when empty
}

type ScenarioConfig struct {
	File string `toml:"file"` // YAML, TOML or JSON scenario overlaying the defaults
}

func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			Dir:        "logs",
			TimeFormat: "15:04:05",
		},
		Report: ReportConfig{
			Title:      "Coffee Shop Financial Model",
			Subtitle:   "Investment Analysis Report",
			Footer:     "Confidential",
			Author:     "coffee-engine",
			Disclaimer: "For investment purposes only. Consult a financial advisor before making decisions.",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies COFFEE_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Server configuration
	if port := os.Getenv("COFFEE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("COFFEE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("COFFEE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("COFFEE_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if dir := os.Getenv("COFFEE_LOG_DIR"); dir != "" {
		config.Logging.Dir = dir
	}

	// Report configuration
	if title := os.Getenv("COFFEE_REPORT_TITLE"); title != "" {
		config.Report.Title = title
	}
	if author := os.Getenv("COFFEE_REPORT_AUTHOR"); author != "" {
		config.Report.Author = author
	}

	if url := os.Getenv("COFFEE_SCHEDULES_URL"); url != "" {
		config.Schedules.URL = url
	}
	if file := os.Getenv("COFFEE_SCENARIO_FILE"); file != "" {
		config.Scenario.File = file
	}
}
