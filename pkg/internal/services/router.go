package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/metrics"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

func MeetingStartedEvent(pluginID string) string {
	return fmt.Sprintf("custom_%s_meeting_started", pluginID)
}

func ScheduleDialogEvent(pluginID string) string {
	return fmt.Sprintf("custom_%s_open_schedule_meeting_dialog", pluginID)
}

// Router turns push events into the same side effects a direct call has.
// It does not know which action, if any, caused the event.
type Router struct {
	pluginID string
	env      Environment
}

func NewRouter(pluginID string, env Environment) *Router {
	return &Router{pluginID: pluginID, env: env}
}

func (v *Router) OnMeetingStarted(event models.MeetingStarted) {
	if len(event.MeetingURL) == 0 {
		return
	}
	v.env.OpenURL(event.MeetingURL)
}

func (v *Router) OnScheduleDialogRequested(event models.ScheduleDialogRequested) {
	channelID := event.ChannelID
	if len(channelID) == 0 {
		channelID = v.env.CurrentChannelID()
	}
	v.env.OpenScheduleDialog(channelID)
}

func (v *Router) Route(event models.PushEvent) {
	switch val := event.(type) {
	case models.MeetingStarted:
		v.OnMeetingStarted(val)
	case *models.MeetingStarted:
		if val != nil {
			v.OnMeetingStarted(*val)
		}
	case models.ScheduleDialogRequested:
		v.OnScheduleDialogRequested(val)
	case *models.ScheduleDialogRequested:
		if val != nil {
			v.OnScheduleDialogRequested(*val)
		}
	}
}

// DecodePushEvent reads a named push event. Unknown names return nil without error.
func (v *Router) DecodePushEvent(name string, data []byte) (models.PushEvent, error) {
	switch name {
	case MeetingStartedEvent(v.pluginID):
		var event models.MeetingStarted
		if err := jsoniter.Unmarshal(data, &event); err != nil {
			return nil, err
		}
		return event, nil
	case ScheduleDialogEvent(v.pluginID):
		var event models.ScheduleDialogRequested
		if err := jsoniter.Unmarshal(data, &event); err != nil {
			return nil, err
		}
		return event, nil
	default:
		return nil, nil
	}
}

// HandleRaw decodes and routes one delivery. Malformed payloads are dropped.
func (v *Router) HandleRaw(name string, data []byte) {
	event, err := v.DecodePushEvent(name, data)
	if err != nil {
		log.Debug().Err(err).Str("event", name).Msg("Dropped malformed push event.")
		metrics.RecordPushEvent(name, false)
		return
	} else if event == nil {
		return
	}

	metrics.RecordPushEvent(name, true)
	v.Route(event)
}
