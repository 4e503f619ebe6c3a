package config

import (
	"time"
)

const (
	DefaultFeed         = "https://dotnetcli.azureedge.net/dotnet"
	DefaultUncachedFeed = "https://dotnetcli.blob.core.windows.net/dotnet"
)

// Config is the complete configuration of a download run
type Config struct {
	Channels  []string `mapstructure:"channels"`  // LTS, Current or A.B
	Kinds     []string `mapstructure:"kinds"`     // sdk, runtime, aspnet-runtime, hosting-bundle, windows-desktop-runtime
	Platforms []string `mapstructure:"platforms"` // e.g. win-x64, linux-arm64, alpine-x64
	Formats   []string `mapstructure:"formats"`   // exe, zip, tar.gz, pkg

	OutputDir       string `mapstructure:"output_dir" default:"./dotnet"`
	Feed            string `mapstructure:"feed" default:"https://dotnetcli.azureedge.net/dotnet"`
	UncachedFeed    string `mapstructure:"uncached_feed" default:"https://dotnetcli.blob.core.windows.net/dotnet"`
	UseUncachedFeed bool   `mapstructure:"use_uncached_feed"`
	DryRun          bool   `mapstructure:"dry_run"`

	Proxy ProxyConfig `mapstructure:"proxy"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Retry RetryConfig `mapstructure:"retry"`
	Log   LogConfig   `mapstructure:"log"`
}

type ProxyConfig struct {
	Address               string `mapstructure:"address"`
	UseDefaultCredentials bool   `mapstructure:"use_default_credentials"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" default:"1200s"`
}

type RetryConfig struct {
	Attempts int           `mapstructure:"attempts" default:"3"`
	Delay    time.Duration `mapstructure:"delay" default:"300ms"`
}

// ActiveFeed is the feed artifacts and metadata are fetched from
func (c *Config) ActiveFeed() string {
	if c.UseUncachedFeed {
		return c.UncachedFeed
	}
	return c.Feed
}
