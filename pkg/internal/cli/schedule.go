package cli

import (
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var startLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

func parseStart(raw string) (time.Time, error) {
	for _, layout := range startLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse start time %q", raw)
}

func NewScheduleCmd() *cobra.Command {
	var channelID, topic, start, idType string
	var hours, minutes float64
	var announce, remind bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a meeting for later",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(); err != nil {
				return err
			}

			form := models.ScheduleForm{
				Topic:             topic,
				DurationHours:     hours,
				DurationMinutes:   minutes,
				MeetingIDType:     idType,
				AnnounceToChannel: announce,
				RemindChannel:     remind,
			}
			if len(start) > 0 {
				parsed, err := parseStart(start)
				if err != nil {
					return err
				}
				form.StartTime = parsed
			}

			session := newTerminalSessionFromSettings(cmd.OutOrStdout(), channelID)
			defer session.Close()

			err := session.Run(host.ActionScheduleMeeting, host.ActionRequest{
				ChannelID: channelID,
				Schedule:  &form,
			})
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				for field, reason := range verr.Fields {
					color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, reason)
				}
				return err
			} else if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Meeting scheduled.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&channelID, "channel", "c", "", "Channel to schedule the meeting in")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Meeting topic")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time, e.g. 2026-03-04 15:30")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Duration hours")
	cmd.Flags().Float64Var(&minutes, "minutes", 30, "Duration minutes")
	cmd.Flags().StringVar(&idType, "id-type", models.MeetingIDTypePersonal, "personal_meeting_id or unique_meeting_id")
	cmd.Flags().BoolVar(&announce, "announce", false, "Announce the meeting in the channel")
	cmd.Flags().BoolVar(&remind, "remind", false, "Remind the channel before the meeting")
	_ = cmd.MarkFlagRequired("channel")

	return cmd
}
