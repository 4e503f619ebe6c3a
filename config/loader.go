package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mcuadros/go-defaults"
	"github.com/odpf/salt/config"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	DefaultFilename      = "dotnet-fetch"
	DefaultFileExtension = "yaml"
	DefaultEnvPrefix     = "DOTNET_FETCH"
	EmptyPath            = ""
)

var FS = afero.NewReadOnlyFs(afero.NewOsFs())

// LoadConfig loads the run config from these locations:
// 1. filepath. ./dotnet-fetch download -c "path/to/dotnet-fetch.yaml"
// 2. current dir. dotnet-fetch.yaml in the working directory, if there is one
// Environment variables prefixed with DOTNET_FETCH_ apply in both cases.
// A missing config file is not an error, the defaults are returned instead.
func LoadConfig(filePath string) (*Config, error) {
	currPath, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current work directory path: %w", err)
	}
	return loadConfigFs(FS, currPath, filePath)
}

func loadConfigFs(fs afero.Fs, dirPath, filePath string) (*Config, error) {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	v := viper.New()
	v.SetFs(fs)

	opts := []config.LoaderOption{
		config.WithViper(v),
		config.WithName(DefaultFilename),
		config.WithType(DefaultFileExtension),
		config.WithEnvPrefix(DefaultEnvPrefix),
		config.WithEnvKeyReplacer(".", "_"),
	}

	if filePath != EmptyPath {
		if err := validateFilepath(fs, filePath); err != nil {
			return nil, err
		}
		opts = append(opts, config.WithFile(filePath))
	} else {
		opts = append(opts, config.WithPath(dirPath))
	}

	l := config.NewLoader(opts...)
	if err := l.Load(cfg); err != nil && !errors.As(err, &config.ConfigFileNotFoundError{}) {
		return nil, err
	}
	cfg.Log.Level = cfg.Log.Level.Normalize()
	return cfg, nil
}

func validateFilepath(fs afero.Fs, fpath string) error {
	f, err := fs.Stat(fpath)
	if err != nil {
		return err
	}
	if !f.Mode().IsRegular() {
		return fmt.Errorf("%s not a file", fpath)
	}
	return nil
}
