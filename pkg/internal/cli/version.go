package cli

import (
	"fmt"

	pkg "git.solsynth.dev/hypernet/meeting/pkg/internal"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "meeting v%s\n", pkg.AppVersion)
		},
	}
}
