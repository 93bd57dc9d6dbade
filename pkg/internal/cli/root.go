package cli

import (
	"errors"

	pkg "git.solsynth.dev/hypernet/meeting/pkg/internal"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meeting",
		Short:         "Start, schedule and follow provider meetings from chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = pkg.AppVersion
	rootCmd.SetVersionTemplate("meeting v{{.Version}}\n")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewStartCmd())
	rootCmd.AddCommand(NewScheduleCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadSettings reads settings.toml. Running from the environment alone is allowed.
func loadSettings() error {
	if err := config.Load(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
