package resolve

import (
	"context"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/odpf/salt/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/odpf/dotnet-fetch/cmd/internal"
	"github.com/odpf/dotnet-fetch/cmd/internal/logger"
	"github.com/odpf/dotnet-fetch/cmd/internal/progressbar"
	"github.com/odpf/dotnet-fetch/config"
	"github.com/odpf/dotnet-fetch/internal/release"
	"github.com/odpf/dotnet-fetch/internal/resolver"
)

type resolveCommand struct {
	logger   log.Logger
	flags    internal.RunFlags
	config   *config.Config
	progress *progressbar.ProgressBar
}

type resolvedVersion struct {
	channel string
	kind    release.Kind
	version string
	url     string
	err     error
}

// NewResolveCommand initializes command to print the latest version of each channel and kind
func NewResolveCommand() *cobra.Command {
	r := &resolveCommand{
		logger:   logger.NewDefaultLogger(),
		progress: progressbar.NewProgressBar(),
	}
	return r.command()
}

func (r *resolveCommand) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the latest version of the selected channels without downloading",
		Example: heredoc.Doc(`
			$ dotnet-fetch resolve -r LTS -r Current -k sdk -k runtime
		`),
		Annotations: map[string]string{
			"group:core": "true",
		},
		PreRunE: r.PreRunE,
		RunE:    r.RunE,
	}
	r.flags.Inject(cmd)
	return cmd
}

func (r *resolveCommand) PreRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := r.flags.LoadConfig(cmd.Flags(), config.ValidateResolve)
	if err != nil {
		return err
	}
	r.config = cfg
	r.logger = logger.NewClientLoggerWithWriter(cmd.OutOrStdout(), cfg.Log, r.flags.Verbose)
	return nil
}

func (r *resolveCommand) RunE(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	selection, err := internal.Selection(r.config)
	if err != nil {
		return err
	}
	t, err := internal.NewTransport(r.config, afero.NewOsFs(), r.logger, nil)
	if err != nil {
		return internal.FormatError(r.flags.Verbose, err, "unable to prepare transport")
	}
	feed := r.config.ActiveFeed()
	versionResolver := resolver.New(feed, t, r.logger)

	r.progress.Start("resolving channels")
	channels, err := versionResolver.ResolveDistinctChannelVersions(ctx, selection.Selectors, selection.Kinds[0])
	if err != nil {
		r.progress.Stop()
		r.logger.Error(err.Error())
		r.progress.Start("resolving versions")
	}

	var resolved []resolvedVersion
	for _, channel := range channels {
		for _, kind := range selection.Kinds {
			if err := ctx.Err(); err != nil {
				r.progress.Stop()
				return internal.FormatError(r.flags.Verbose, err, "resolution interrupted")
			}
			version, err := versionResolver.FetchLatestVersion(ctx, channel, kind)
			resolved = append(resolved, resolvedVersion{
				channel: channel,
				kind:    kind,
				version: version,
				url:     release.MetadataURL(feed, channel, kind),
				err:     err,
			})
		}
	}
	r.progress.Stop()

	printResolved(cmd.OutOrStdout(), resolved)
	for _, v := range resolved {
		if v.err != nil {
			r.logger.Warn(fmt.Sprintf("unable to resolve %s %s: %s", v.channel, v.kind, v.err))
		}
	}
	return nil
}

func printResolved(w io.Writer, resolved []resolvedVersion) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"Channel",
		"Kind",
		"Version",
		"Metadata URL",
	})
	for _, v := range resolved {
		version := v.version
		if v.err != nil {
			version = "-"
		}
		table.Append([]string{v.channel, v.kind.String(), version, v.url})
	}
	table.Render()
}
