package internal

import (
	"fmt"

	"github.com/hashicorp/go-getter"
	"github.com/odpf/salt/log"
	"github.com/spf13/afero"

	"github.com/odpf/dotnet-fetch/config"
	"github.com/odpf/dotnet-fetch/internal/fetcher"
	"github.com/odpf/dotnet-fetch/internal/release"
	"github.com/odpf/dotnet-fetch/internal/resolver"
	"github.com/odpf/dotnet-fetch/internal/retry"
	"github.com/odpf/dotnet-fetch/internal/transport"
)

// Selection parses the configured lists into the values a run iterates over
func Selection(cfg *config.Config) (fetcher.Config, error) {
	selection := fetcher.Config{DryRun: cfg.DryRun}
	for _, channel := range cfg.Channels {
		selection.Selectors = append(selection.Selectors, release.NewSelector(channel))
	}
	for _, s := range cfg.Kinds {
		kind, err := release.ParseKind(s)
		if err != nil {
			return fetcher.Config{}, err
		}
		selection.Kinds = append(selection.Kinds, kind)
	}
	for _, s := range cfg.Platforms {
		platform, err := release.ParsePlatform(s)
		if err != nil {
			return fetcher.Config{}, err
		}
		selection.Platforms = append(selection.Platforms, platform)
	}
	for _, s := range cfg.Formats {
		format, err := release.ParseFormat(s)
		if err != nil {
			return fetcher.Config{}, err
		}
		selection.Formats = append(selection.Formats, format)
	}
	return selection, nil
}

// NewTransport initializes the transport shared by the resolver and the fetcher
func NewTransport(cfg *config.Config, fs afero.Fs, logger log.Logger, progress getter.ProgressTracker) (*transport.HTTPTransport, error) {
	executor := retry.New(cfg.Retry.Attempts, cfg.Retry.Delay, retry.WithNotify(func(err error, attempt int) {
		logger.Debug(fmt.Sprintf("attempt %d of %d failed: %s", attempt, cfg.Retry.Attempts, err))
	}))
	return transport.New(transport.Options{
		Timeout:                    cfg.HTTP.Timeout,
		ProxyAddress:               cfg.Proxy.Address,
		ProxyUseDefaultCredentials: cfg.Proxy.UseDefaultCredentials,
		UserAgent:                  config.UserAgent(),
		Retry:                      executor,
		Fs:                         fs,
		Progress:                   progress,
		Logger:                     logger,
	})
}

// NewFetcher wires transport, resolver and builder into a fetcher for cfg
func NewFetcher(cfg *config.Config, fs afero.Fs, logger log.Logger, progress getter.ProgressTracker) (*fetcher.Fetcher, error) {
	selection, err := Selection(cfg)
	if err != nil {
		return nil, err
	}
	t, err := NewTransport(cfg, fs, logger, progress)
	if err != nil {
		return nil, err
	}
	feed := cfg.ActiveFeed()
	logger.Debug(fmt.Sprintf("using feed %s", feed))

	return fetcher.New(
		selection,
		resolver.New(feed, t, logger),
		release.NewBuilder(fs, feed, cfg.OutputDir),
		t,
		fs,
		logger,
	)
}
