package internal

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/odpf/dotnet-fetch/config"
)

// RunFlags are the command line overrides of the run config. Only flags set
// explicitly on the command line replace loaded values.
type RunFlags struct {
	ConfigFilePath string
	Verbose        bool

	channels        []string
	kinds           []string
	platforms       []string
	formats         []string
	outputDir       string
	feed            string
	uncachedFeed    string
	useUncachedFeed bool
	proxy           string
	proxyUseCreds   bool
	dryRun          bool
}

// Inject registers the flags on cmd
func (f *RunFlags) Inject(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.ConfigFilePath, "config", "c", config.EmptyPath, "File path for dotnet-fetch configuration")
	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "Print debug logs and error causes")

	flags.StringSliceVarP(&f.channels, "channel", "r", nil, "Release channel, LTS, Current or A.B (repeatable)")
	flags.StringSliceVarP(&f.kinds, "kind", "k", nil, "Artifact kind: sdk, runtime, aspnet-runtime, hosting-bundle, windows-desktop-runtime")
	flags.StringSliceVarP(&f.platforms, "platform", "p", nil, "Target platform, e.g. win-x64, linux-arm64, alpine-x64")
	flags.StringSliceVarP(&f.formats, "format", "f", nil, "Package format: exe, zip, tar.gz, pkg")
	flags.StringVarP(&f.outputDir, "output", "o", "", "Root directory downloads are stored in")
	flags.StringVar(&f.feed, "feed", "", "Primary feed base url")
	flags.StringVar(&f.uncachedFeed, "uncached-feed", "", "Uncached feed base url")
	flags.BoolVar(&f.useUncachedFeed, "use-uncached-feed", false, "Fetch from the uncached feed instead of the primary one")
	flags.StringVar(&f.proxy, "proxy", "", "Proxy address used for every request")
	flags.BoolVar(&f.proxyUseCreds, "proxy-use-default-credentials", false, "Forward credentials embedded in the proxy address")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Resolve versions and print the plan without downloading")
}

// Apply copies the flags changed in flags onto cfg
func (f *RunFlags) Apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("channel") {
		cfg.Channels = f.channels
	}
	if flags.Changed("kind") {
		cfg.Kinds = f.kinds
	}
	if flags.Changed("platform") {
		cfg.Platforms = f.platforms
	}
	if flags.Changed("format") {
		cfg.Formats = f.formats
	}
	if flags.Changed("output") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("feed") {
		cfg.Feed = f.feed
	}
	if flags.Changed("uncached-feed") {
		cfg.UncachedFeed = f.uncachedFeed
	}
	if flags.Changed("use-uncached-feed") {
		cfg.UseUncachedFeed = f.useUncachedFeed
	}
	if flags.Changed("proxy") {
		cfg.Proxy.Address = f.proxy
	}
	if flags.Changed("proxy-use-default-credentials") {
		cfg.Proxy.UseDefaultCredentials = f.proxyUseCreds
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
}

// LoadConfig loads the config file, applies the changed flags and validates the result with validate
func (f *RunFlags) LoadConfig(flags *pflag.FlagSet, validate func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	f.Apply(flags, cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
