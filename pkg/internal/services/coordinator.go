package services

import (
	"errors"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/metrics"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	pathStartMeeting    = "/api/v1/meetings"
	pathScheduleMeeting = "/api/v1/schedule-meeting"
)

// MeetingError is returned when a request failed. Message is what the
// user was shown.
type MeetingError struct {
	Message string
	Cause   error
}

func (v *MeetingError) Error() string {
	return v.Message
}

func (v *MeetingError) Unwrap() error {
	return v.Cause
}

type startMeetingBody struct {
	ChannelID string `json:"channel_id"`
	Topic     string `json:"topic"`
	RootID    string `json:"root_id"`
	UsePMI    string `json:"use_pmi,omitempty"`
}

type startMeetingResponse struct {
	MeetingURL string `json:"meeting_url"`
	Error      string `json:"error"`
}

type scheduleMeetingBody struct {
	ChannelID               string `json:"channel_id"`
	MeetingTopic            string `json:"meeting_topic"`
	MeetingTime             string `json:"meeting_time"`
	MeetingDate             string `json:"meeting_date"`
	MeetingDuration         int    `json:"meeting_duration"`
	PostMeetingAnnouncement bool   `json:"post_meeting_announcement"`
	PostMeetingReminder     bool   `json:"post_meting_reminder"`
	MeetingIDType           string `json:"meeting_id_type"`
}

// Coordinator is the only write path for starting and scheduling meetings
// and the only place failures become user visible messages.
// Concurrent calls are not coalesced, each one is an independent request.
type Coordinator struct {
	plugin   MeetingTransport
	threads  ThreadResolver
	env      Environment
	provider string
	now      func() time.Time
}

func NewCoordinator(plugin MeetingTransport, threads ThreadResolver, env Environment, provider string) *Coordinator {
	return &Coordinator{
		plugin:   plugin,
		threads:  threads,
		env:      env,
		provider: provider,
		now:      time.Now,
	}
}

func (v *Coordinator) Provider() string {
	return v.provider
}

func (v *Coordinator) Start(channelID, rootID, topic string) error {
	return v.StartMeeting(models.MeetingRequest{ChannelID: channelID, RootID: rootID, Topic: topic})
}

// ForceStart asks the provider for a new meeting even when one already
// exists under the same identity.
func (v *Coordinator) ForceStart(channelID, rootID, topic string) error {
	return v.StartMeeting(models.MeetingRequest{ChannelID: channelID, RootID: rootID, Topic: topic, ForceNew: true})
}

func (v *Coordinator) StartMeeting(req models.MeetingRequest) error {
	mode := lo.Ternary(req.ForceNew, "force", "start")

	if len(req.ChannelID) == 0 {
		channelID, err := v.resolveChannel(req.RootID)
		if err != nil {
			metrics.RecordStart(mode, "failed")
			log.Warn().Err(err).Str("root", req.RootID).Msg("Unable to resolve channel for meeting request.")
			fallback := req
			fallback.ChannelID = v.env.CurrentChannelID()
			return v.fail(fallback, GenericStartFailure, err)
		}
		req.ChannelID = channelID
	}

	path := lo.Ternary(req.ForceNew, pathStartMeeting+"?force=true", pathStartMeeting)
	body := startMeetingBody{
		ChannelID: req.ChannelID,
		Topic:     req.Topic,
		RootID:    req.RootID,
		UsePMI:    lo.Ternary(req.Personal, "true", ""),
	}

	var resp startMeetingResponse
	if err := v.plugin.Post(path, body, &resp); err != nil {
		metrics.RecordStart(mode, "failed")
		log.Warn().Err(err).Str("channel", req.ChannelID).Bool("force", req.ForceNew).
			Msg("An error occurred when starting meeting.")
		return v.fail(req, GenericStartFailure, err)
	}

	switch {
	case len(resp.MeetingURL) > 0:
		metrics.RecordStart(mode, "opened")
		v.env.OpenURL(resp.MeetingURL)
	case len(resp.Error) > 0:
		metrics.RecordStart(mode, "soft_error")
		perr := ParseProviderError(resp.Error)
		message := FormatProviderError(v.provider, GenericStartFailure, perr)
		log.Info().Str("channel", req.ChannelID).Str("reason", resp.Error).Msg("Meeting server declined to start meeting.")
		v.publish(req.ChannelID, req.RootID, message)
	default:
		// The server answered with a conflict or a connect prompt of its own.
		metrics.RecordStart(mode, "deferred")
	}

	return nil
}

// ScheduleMeeting expects a request built by BuildScheduleRequest.
func (v *Coordinator) ScheduleMeeting(req models.ScheduleRequest) error {
	start := req.StartTime
	body := scheduleMeetingBody{
		ChannelID:               req.ChannelID,
		MeetingTopic:            req.Topic,
		MeetingTime:             start.Format("15:04"),
		MeetingDate:             start.Format(time.DateOnly),
		MeetingDuration:         req.DurationMinutes,
		PostMeetingAnnouncement: req.AnnounceToChannel,
		PostMeetingReminder:     req.RemindChannel,
		MeetingIDType:           req.MeetingIDType,
	}

	if err := v.plugin.Post(pathScheduleMeeting, body, nil); err != nil {
		metrics.RecordSchedule("failed")
		log.Warn().Err(err).Str("channel", req.ChannelID).Msg("An error occurred when scheduling meeting.")
		return v.fail(models.MeetingRequest{ChannelID: req.ChannelID}, GenericScheduleFailure, err)
	}

	metrics.RecordSchedule("scheduled")
	return nil
}

func (v *Coordinator) resolveChannel(rootID string) (string, error) {
	if len(rootID) == 0 {
		return "", errors.New("meeting request has neither channel nor thread")
	}
	if v.threads == nil {
		return "", errors.New("no thread resolver configured")
	}
	return v.threads.ResolveThreadChannel(rootID)
}

func (v *Coordinator) fail(req models.MeetingRequest, generic string, cause error) error {
	message := DescribeFailure(v.provider, generic, cause)
	v.publish(req.ChannelID, req.RootID, message)
	return &MeetingError{Message: message, Cause: cause}
}

func (v *Coordinator) publish(channelID, rootID, message string) {
	v.env.PublishEphemeral(models.EphemeralEvent{
		ID:         "meetingPlugin" + uuid.NewString(),
		ChannelID:  channelID,
		RootID:     rootID,
		Message:    message,
		Visibility: models.VisibilitySenderOnly,
		CreatedAt:  v.now(),
	})
}
