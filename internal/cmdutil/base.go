package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BaseCommandConfig holds common configuration for collect commands
type BaseCommandConfig struct {
	OutputDir string
	ConfigKey string
}

// SetupOutputDir handles the common output directory setup logic
func SetupOutputDir(cfg *BaseCommandConfig) error {
	// If flag wasn't provided, try to get value from config
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = viper.GetString(cfg.ConfigKey + ".output")
	}
	if outputDir == "" && cfg.ConfigKey != "" {
		// Fall back to using the config key as the subdirectory name
		outputDir = cfg.ConfigKey
	}

	// Combine the base raw data directory with the specific subdirectory
	baseDir := viper.GetString("rawoutputdir")
	if baseDir == "" {
		baseDir = filepath.Join("data", "raw")
	}
	cfg.OutputDir = filepath.Clean(filepath.Join(baseDir, outputDir))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return nil
}
