package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/odpf/salt/log"
	"github.com/spf13/afero"

	fetchErrors "github.com/odpf/dotnet-fetch/internal/errors"
	"github.com/odpf/dotnet-fetch/internal/release"
	"github.com/odpf/dotnet-fetch/internal/resolver"
)

var (
	// ErrNilResolver is error when resolver is nil
	ErrNilResolver = errors.New("resolver is nil")
	// ErrNilBuilder is error when builder is nil
	ErrNilBuilder = errors.New("builder is nil")
	// ErrNilDownloader is error when downloader is nil
	ErrNilDownloader = errors.New("downloader is nil")
)

// VersionResolver resolves channels and concrete versions.
type VersionResolver interface {
	ResolveDistinctChannelVersions(ctx context.Context, selectors []release.Selector, probe release.Kind) ([]string, error)
	FetchLatestVersion(ctx context.Context, channel string, kind release.Kind) (string, error)
}

// Downloader stores the artifact at url in dst.
type Downloader interface {
	Download(ctx context.Context, url, dst string) error
}

// Config is the selection a run iterates over.
type Config struct {
	Selectors []release.Selector
	Kinds     []release.Kind
	Platforms []release.Platform
	Formats   []release.Format
	DryRun    bool
}

// Validate fails when any of the lists to iterate over is empty.
func (c Config) Validate() error {
	switch {
	case len(c.Selectors) == 0:
		return fetchErrors.ConfigValidation("channels", "at least one channel is required")
	case len(c.Kinds) == 0:
		return fetchErrors.ConfigValidation("kinds", "at least one artifact kind is required")
	case len(c.Platforms) == 0:
		return fetchErrors.ConfigValidation("platforms", "at least one platform is required")
	case len(c.Formats) == 0:
		return fetchErrors.ConfigValidation("formats", "at least one package format is required")
	}
	return nil
}

// Fetcher walks channels x kinds x platforms x formats and downloads every
// artifact not present yet. Failures are recorded and never stop the walk.
type Fetcher struct {
	config     Config
	resolver   VersionResolver
	builder    *release.Builder
	downloader Downloader
	fs         afero.Fs
	logger     log.Logger
}

// New initializes fetcher, fs must be the filesystem the downloader writes to
func New(config Config, versionResolver VersionResolver, builder *release.Builder, downloader Downloader, fs afero.Fs, logger log.Logger) (*Fetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if versionResolver == nil {
		return nil, ErrNilResolver
	}
	if builder == nil {
		return nil, ErrNilBuilder
	}
	if downloader == nil {
		return nil, ErrNilDownloader
	}
	if logger == nil {
		logger = log.NewNoop()
	}
	return &Fetcher{
		config:     config,
		resolver:   versionResolver,
		builder:    builder,
		downloader: downloader,
		fs:         fs,
		logger:     logger,
	}, nil
}

// Run executes the whole selection. The returned error is only set when ctx
// is done before the run completes, the summary is always returned.
func (f *Fetcher) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	probe := f.config.Kinds[0]
	channels, err := f.resolver.ResolveDistinctChannelVersions(ctx, f.config.Selectors, probe)
	if err != nil {
		f.recordSelectorFailures(summary, err)
	}
	f.logger.Debug(fmt.Sprintf("resolved channels: %v", channels))

	for _, channel := range channels {
		for _, kind := range f.config.Kinds {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if err := f.fetchKind(ctx, summary, channel, kind); err != nil {
				return summary, err
			}
		}
	}
	return summary, ctx.Err()
}

func (f *Fetcher) fetchKind(ctx context.Context, summary *Summary, channel string, kind release.Kind) error {
	version, err := f.resolver.FetchLatestVersion(ctx, channel, kind)
	if err != nil {
		f.logger.Error(fmt.Sprintf("unable to resolve %s version for channel %s: %s", kind, channel, err))
		summary.add(Result{Channel: channel, Kind: kind, Status: StatusFailed, Err: err})
		return nil
	}
	f.logger.Info(fmt.Sprintf("channel %s %s version is %s", channel, kind, version))

	var dir string
	if f.config.DryRun {
		dir = f.builder.OutputDirectory(channel, kind)
	} else {
		dir, err = f.builder.OutputDirectoryFor(channel, kind)
		if err != nil {
			f.logger.Error(err.Error())
			summary.add(Result{Channel: channel, Kind: kind, Version: version, Status: StatusFailed, Err: err})
			return nil
		}
	}

	for _, platform := range f.config.Platforms {
		for _, format := range f.config.Formats {
			if err := ctx.Err(); err != nil {
				return err
			}
			info := f.builder.BuildDownloadInfo(version, platform, kind, format)
			info.Directory = dir
			result := Result{
				Channel:  channel,
				Kind:     kind,
				Platform: platform,
				Format:   format,
				Version:  version,
				URL:      info.RemoteURL,
				Path:     info.Path(),
			}
			summary.add(f.fetchOne(ctx, info, result))
		}
	}
	return nil
}

func (f *Fetcher) fetchOne(ctx context.Context, info release.DownloadInfo, result Result) Result {
	exists, err := afero.Exists(f.fs, info.Path())
	if err != nil {
		f.logger.Warn(fmt.Sprintf("unable to check %s: %s", info.Path(), err))
	}
	if exists {
		f.logger.Info(fmt.Sprintf("skipping %s, file already exists", info.Path()))
		result.Status = StatusSkipped
		return result
	}

	if f.config.DryRun {
		f.logger.Info(fmt.Sprintf("would download %s to %s", info.RemoteURL, info.Path()))
		result.Status = StatusPlanned
		return result
	}

	f.logger.Info(fmt.Sprintf("downloading %s", info.RemoteURL))
	if err := f.downloader.Download(ctx, info.RemoteURL, info.Path()); err != nil {
		result.Status = StatusFailed
		result.Err = fetchErrors.ArtifactDownload(info.RemoteURL, "download failed", err)
		f.logger.Error(fmt.Sprintf("failed to download %s: %s", result.Target(), err))
		return result
	}
	f.logger.Info(fmt.Sprintf("saved %s", info.Path()))
	result.Status = StatusDownloaded
	return result
}

func (f *Fetcher) recordSelectorFailures(summary *Summary, err error) {
	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	}
	for _, e := range errs {
		result := Result{Status: StatusFailed, Err: e}
		var selectorErr *resolver.SelectorError
		if errors.As(e, &selectorErr) {
			result.Channel = selectorErr.Selector.String()
			result.Err = selectorErr.Err
		}
		f.logger.Error(e.Error())
		summary.add(result)
	}
}
