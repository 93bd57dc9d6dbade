package cli

import (
	"errors"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func NewStartCmd() *cobra.Command {
	var channelID, rootID, topic string
	var force, personal bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a meeting in a channel or thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(); err != nil {
				return err
			}
			if len(channelID) == 0 && len(rootID) == 0 {
				return errors.New("either --channel or --root is required")
			}

			session := newTerminalSessionFromSettings(cmd.OutOrStdout(), channelID)
			defer session.Close()

			action := lo.Ternary(force, host.ActionForceStartMeeting, host.ActionStartMeeting)
			return session.Run(action, host.ActionRequest{
				ChannelID: channelID,
				RootID:    rootID,
				Topic:     topic,
				Personal:  personal,
			})
		},
	}

	cmd.Flags().StringVarP(&channelID, "channel", "c", "", "Channel to start the meeting in")
	cmd.Flags().StringVarP(&rootID, "root", "r", "", "Thread root post, the channel is looked up from it")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Meeting topic")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Create a new meeting even if one was created recently")
	cmd.Flags().BoolVar(&personal, "personal", false, "Use the personal meeting id")

	return cmd
}
