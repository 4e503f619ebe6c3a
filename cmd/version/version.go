package version

import (
	"fmt"

	"github.com/odpf/salt/log"
	"github.com/spf13/cobra"

	"github.com/odpf/dotnet-fetch/cmd/internal/logger"
	"github.com/odpf/dotnet-fetch/config"
)

type versionCommand struct {
	logger log.Logger
}

// NewVersionCommand initializes command to get version
func NewVersionCommand() *cobra.Command {
	v := &versionCommand{}

	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the client version information",
		Example: "dotnet-fetch version",
		PreRunE: v.PreRunE,
		RunE:    v.RunE,
	}
	return cmd
}

func (v *versionCommand) PreRunE(cmd *cobra.Command, _ []string) error {
	v.logger = logger.NewClientLoggerWithWriter(cmd.OutOrStdout(), config.LogConfig{}, false)
	return nil
}

func (v *versionCommand) RunE(_ *cobra.Command, _ []string) error {
	version := config.BuildVersion
	if config.BuildCommit != "" {
		version = fmt.Sprintf("%s-%s", version, config.BuildCommit)
	}
	v.logger.Info(fmt.Sprintf("%s: %s", config.AppName, version))
	if config.BuildDate != "" {
		v.logger.Info(fmt.Sprintf("Built at: %s", config.BuildDate))
	}
	return nil
}
