package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"db-scan/internal/command"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultBinary is the assessment tool looked up in PATH or in --binpath.
const DefaultBinary = "ora2pg"

var (
	ErrInvalidFormat   = errors.New("invalid report format")
	ErrBinaryNotFound  = errors.New("ora2pg binary not found")
	ErrOutputDirExists = errors.New("output directory already exists")
)

func setDefaults() {
	viper.SetDefault("scan.outdir", "output")
	viper.SetDefault("scan.format", "html")
	viper.SetDefault("scan.cost_unit", 5)
	viper.SetDefault("log.level", "info")
}

// LoadRunConfig builds the run configuration (Flag > Env > Config file > Default).
func LoadRunConfig() (command.RunConfig, error) {
	cfg := command.RunConfig{
		OutDir:     viper.GetString("scan.outdir"),
		Format:     strings.ToLower(viper.GetString("scan.format")),
		DryRun:     viper.GetBool("scan.dry_run"),
		CostUnit:   viper.GetInt("scan.cost_unit"),
		ConfigFile: viper.GetString("scan.config"),
		Timeout:    viper.GetDuration("scan.timeout"),
	}

	if !lo.Contains(command.Formats, cfg.Format) {
		return cfg, fmt.Errorf("%w %q: must be one of %s", ErrInvalidFormat, cfg.Format, strings.Join(command.Formats, ", "))
	}
	if cfg.CostUnit <= 0 {
		return cfg, fmt.Errorf("cost unit value must be a positive number of minutes, got %d", cfg.CostUnit)
	}
	if cfg.OutDir == "" {
		return cfg, fmt.Errorf("output directory must not be empty")
	}

	bin, err := resolveBinary(viper.GetString("scan.binary"))
	if err != nil {
		return cfg, err
	}
	cfg.Binary = bin

	return cfg, nil
}

// resolveBinary accepts a binary path, a directory holding ora2pg, or nothing (PATH lookup).
func resolveBinary(path string) (string, error) {
	if path == "" {
		bin, err := exec.LookPath(DefaultBinary)
		if err != nil {
			return "", fmt.Errorf("%w in PATH, use --binpath: %v", ErrBinaryNotFound, err)
		}
		return bin, nil
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultBinary)
		info, err = os.Stat(path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrBinaryNotFound, path)
	}
	return path, nil
}

// prepareOutDir creates the output directory of an executed run. It refuses to
// reuse an existing one. Dry runs never touch it.
func prepareOutDir(cfg command.RunConfig) error {
	if cfg.DryRun {
		return nil
	}
	if _, err := os.Stat(cfg.OutDir); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputDirExists, cfg.OutDir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check output directory: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// loadEnvFile loads the dotenv file into the process environment, which the
// assessment tool inherits. An absent file is only an error when asked for
// explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return fmt.Errorf("env file %s not found", path)
		}
		log.Debugf("No %s file found, using existing environment variables", path)
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	log.Infof("Loaded environment variables from %s", path)
	return nil
}
