package cmd

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/odpf/salt/cmdx"
	cli "github.com/spf13/cobra"

	"github.com/odpf/dotnet-fetch/cmd/download"
	"github.com/odpf/dotnet-fetch/cmd/resolve"
	"github.com/odpf/dotnet-fetch/cmd/version"
)

var disableColoredOut = false

// New constructs the 'root' command. It houses all other sub commands
// default output of logging and the summary goes to stdout
// progress bars go to stderr, only when it is a tty
func New() *cli.Command {
	cmd := &cli.Command{
		Use: "dotnet-fetch <command> [flags]",
		Long: heredoc.Doc(`
			dotnet-fetch mirrors .NET release artifacts from the official feeds.

			Channels (LTS, Current or A.B) are resolved to their latest version and
			every selected kind, platform and format is downloaded into a
			<output>/<channel>/<SDK|Runtime> layout. Existing files are skipped.`),
		SilenceUsage: true,
		Example: heredoc.Doc(`
				$ dotnet-fetch download -r LTS -k sdk -p linux-x64 -f tar.gz
				$ dotnet-fetch resolve -r Current -k runtime
				$ dotnet-fetch version
			`),
		Annotations: map[string]string{
			"group:core": "true",
			"help:learn": heredoc.Doc(`
				Use 'dotnet-fetch <command> --help' for more information about a command.
				Settings can be kept in dotnet-fetch.yaml or DOTNET_FETCH_* variables.
			`),
		},
		PersistentPreRun: func(cmd *cli.Command, args []string) {
			if disableColoredOut {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&disableColoredOut, "no-color", disableColoredOut, "Disable colored output")

	cmdx.SetHelp(cmd)

	cmd.AddCommand(
		download.NewDownloadCommand(),
		resolve.NewResolveCommand(),
		version.NewVersionCommand(),
	)
	return cmd
}
