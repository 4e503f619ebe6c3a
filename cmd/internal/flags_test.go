package internal_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odpf/dotnet-fetch/cmd/internal"
	"github.com/odpf/dotnet-fetch/config"
)

func TestRunFlags(t *testing.T) {
	newCommand := func(f *internal.RunFlags) *cobra.Command {
		cmd := &cobra.Command{Use: "download"}
		f.Inject(cmd)
		return cmd
	}

	t.Run("should override only the flags that were set", func(t *testing.T) {
		f := &internal.RunFlags{}
		cmd := newCommand(f)
		require.NoError(t, cmd.Flags().Parse([]string{
			"-r", "LTS", "--channel", "3.1",
			"--kind", "sdk,runtime",
			"--use-uncached-feed",
			"--proxy", "http://proxy.example.invalid:3128",
			"--dry-run",
		}))
		cfg := validConfig()
		cfg.DryRun = false

		f.Apply(cmd.Flags(), cfg)

		assert.Equal(t, []string{"LTS", "3.1"}, cfg.Channels)
		assert.Equal(t, []string{"sdk", "runtime"}, cfg.Kinds)
		assert.Equal(t, []string{"alpine-x64"}, cfg.Platforms)
		assert.Equal(t, []string{".tar.gz"}, cfg.Formats)
		assert.Equal(t, "/mirror", cfg.OutputDir)
		assert.True(t, cfg.UseUncachedFeed)
		assert.Equal(t, config.DefaultUncachedFeed, cfg.ActiveFeed())
		assert.Equal(t, "http://proxy.example.invalid:3128", cfg.Proxy.Address)
		assert.False(t, cfg.Proxy.UseDefaultCredentials)
		assert.True(t, cfg.DryRun)
	})
	t.Run("should let an explicit false flag win over the config", func(t *testing.T) {
		f := &internal.RunFlags{}
		cmd := newCommand(f)
		require.NoError(t, cmd.Flags().Parse([]string{"--dry-run=false", "-o", "./out"}))
		cfg := validConfig()

		f.Apply(cmd.Flags(), cfg)

		assert.False(t, cfg.DryRun)
		assert.Equal(t, "./out", cfg.OutputDir)
	})
}
