package download

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/hashicorp/go-getter"
	"github.com/odpf/salt/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/odpf/dotnet-fetch/cmd/internal"
	"github.com/odpf/dotnet-fetch/cmd/internal/logger"
	"github.com/odpf/dotnet-fetch/cmd/internal/progressbar"
	"github.com/odpf/dotnet-fetch/config"
)

// progressIndicator spins while channels resolve and tracks each download
type progressIndicator interface {
	getter.ProgressTracker
	Start(label string)
	Stop()
}

type downloadCommand struct {
	logger   log.Logger
	flags    internal.RunFlags
	config   *config.Config
	fs       afero.Fs
	progress func() progressIndicator
}

// NewDownloadCommand initializes command to download the selected artifacts
func NewDownloadCommand() *cobra.Command {
	d := &downloadCommand{
		logger: logger.NewDefaultLogger(),
		fs:     afero.NewOsFs(),
		progress: func() progressIndicator {
			return progressbar.NewProgressBar()
		},
	}
	return d.command()
}

func (d *downloadCommand) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the latest artifacts of the selected channels",
		Long: heredoc.Doc(`
			Resolves every channel to its latest version and downloads each
			kind, platform and format combination into the output directory.
			Files already present are skipped, failures are reported in the
			summary and never stop the run.`),
		Example: heredoc.Doc(`
			$ dotnet-fetch download -r LTS -r 3.1 -k sdk -p win-x64 -f zip
			$ dotnet-fetch download -c mirror.yaml --dry-run
		`),
		Annotations: map[string]string{
			"group:core": "true",
		},
		PreRunE: d.PreRunE,
		RunE:    d.RunE,
	}
	d.flags.Inject(cmd)
	return cmd
}

func (d *downloadCommand) PreRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := d.flags.LoadConfig(cmd.Flags(), config.Validate)
	if err != nil {
		return err
	}
	d.config = cfg
	d.logger = logger.NewClientLoggerWithWriter(cmd.OutOrStdout(), cfg.Log, d.flags.Verbose)
	return nil
}

func (d *downloadCommand) RunE(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bar := d.progress()
	defer bar.Stop()
	var tracker getter.ProgressTracker
	if !d.config.DryRun {
		tracker = bar
	}

	f, err := internal.NewFetcher(d.config, d.fs, d.logger, tracker)
	if err != nil {
		return internal.FormatError(d.flags.Verbose, err, "unable to prepare download run")
	}

	bar.Start("resolving channels")
	summary, runErr := f.Run(ctx)
	bar.Stop()
	printSummary(cmd.OutOrStdout(), summary)
	d.logger.Info(summary.String())

	if runErr != nil {
		return internal.FormatError(d.flags.Verbose, runErr, "download run interrupted")
	}
	if err := summary.Err(); err != nil {
		d.logger.Warn(fmt.Sprintf("%d item(s) failed", len(summary.Failures())))
		d.logger.Debug(err.Error())
	}
	return nil
}
