package host

import (
	"errors"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/database"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const (
	ActionStartMeeting       = "start_meeting"
	ActionForceStartMeeting  = "force_start_meeting"
	ActionOpenScheduleDialog = "open_schedule_dialog"
	ActionScheduleMeeting    = "schedule_meeting"
	ActionPerform            = "perform_action"

	EventPosted     = "posted"
	EventPostEdited = "post_edited"
)

type Plugin struct {
	pluginID    string
	coordinator *services.Coordinator
	router      *services.Router
	env         services.Environment

	// Archive stores every observed meeting post when set.
	Archive bool
}

func NewPlugin(pluginID string, coordinator *services.Coordinator, env services.Environment) *Plugin {
	return &Plugin{
		pluginID:    pluginID,
		coordinator: coordinator,
		router:      services.NewRouter(pluginID, env),
		env:         env,
	}
}

func (v *Plugin) Coordinator() *services.Coordinator {
	return v.coordinator
}

// Initialize hands every action, event handler and component to the host.
func (v *Plugin) Initialize(registry Registry) {
	registry.RegisterAction(ActionStartMeeting, v.startMeeting)
	registry.RegisterAction(ActionForceStartMeeting, v.forceStartMeeting)
	registry.RegisterAction(ActionOpenScheduleDialog, v.openScheduleDialog)
	registry.RegisterAction(ActionScheduleMeeting, v.scheduleMeeting)
	registry.RegisterAction(ActionPerform, v.performAction)

	registry.RegisterEventHandler(services.MeetingStartedEvent(v.pluginID), v.routeEvent(services.MeetingStartedEvent(v.pluginID)))
	registry.RegisterEventHandler(services.ScheduleDialogEvent(v.pluginID), v.routeEvent(services.ScheduleDialogEvent(v.pluginID)))
	if v.Archive {
		registry.RegisterEventHandler(EventPosted, v.archivePost)
		registry.RegisterEventHandler(EventPostEdited, v.archivePost)
	}

	registry.RegisterComponent(models.PostTypeMeeting, v.renderPost)
	registry.RegisterComponent(models.PostTypeTranscript, v.renderTranscript)
	registry.RegisterComponent(models.PostTypeChat, v.renderTranscript)
}

func (v *Plugin) channelOf(req ActionRequest) string {
	if len(req.ChannelID) == 0 && len(req.RootID) == 0 {
		return v.env.CurrentChannelID()
	}
	return req.ChannelID
}

func (v *Plugin) startMeeting(req ActionRequest) error {
	return v.coordinator.StartMeeting(models.MeetingRequest{
		ChannelID: v.channelOf(req),
		RootID:    req.RootID,
		Topic:     req.Topic,
		Personal:  req.Personal,
	})
}

func (v *Plugin) forceStartMeeting(req ActionRequest) error {
	return v.coordinator.ForceStart(v.channelOf(req), req.RootID, req.Topic)
}

func (v *Plugin) openScheduleDialog(req ActionRequest) error {
	channelID := req.ChannelID
	if len(channelID) == 0 {
		channelID = v.env.CurrentChannelID()
	}
	v.env.OpenScheduleDialog(channelID)
	return nil
}

func (v *Plugin) scheduleMeeting(req ActionRequest) error {
	if req.Schedule == nil {
		return &services.ValidationError{Fields: map[string]string{"schedule": "required"}}
	}

	channelID := req.ChannelID
	if len(channelID) == 0 {
		channelID = v.env.CurrentChannelID()
	}
	schedule, err := services.BuildScheduleRequest(channelID, *req.Schedule)
	if err != nil {
		return err
	}
	if err := v.coordinator.ScheduleMeeting(schedule); err != nil {
		return err
	}

	if closer, ok := v.env.(ScheduleDialogCloser); ok {
		closer.CloseScheduleDialog()
	}
	return nil
}

func (v *Plugin) performAction(req ActionRequest) error {
	if req.Choice == nil {
		return &services.ValidationError{Fields: map[string]string{"choice": "required"}}
	}
	return services.PerformAction(v.coordinator, v.env, *req.Choice)
}

func (v *Plugin) routeEvent(name string) EventHandler {
	return func(data []byte) {
		v.router.HandleRaw(name, data)
	}
}

// archivePost reads the post out of a posted event. The chat server sends
// the post as a JSON encoded string inside the event data.
func (v *Plugin) archivePost(data []byte) {
	var envelope struct {
		Post string `json:"post"`
	}
	if err := jsoniter.Unmarshal(data, &envelope); err != nil || len(envelope.Post) == 0 {
		return
	}
	var post models.Post
	if err := jsoniter.UnmarshalFromString(envelope.Post, &post); err != nil {
		log.Debug().Err(err).Msg("Dropped malformed posted event.")
		return
	}
	if post.Type != models.PostTypeMeeting {
		return
	}

	if _, err := services.ArchiveMeetingRecord(post); err != nil && !errors.Is(err, database.ErrNotConfigured) {
		log.Warn().Err(err).Str("post", post.ID).Msg("An error occurred when archiving meeting record.")
	}
}

func (v *Plugin) renderPost(post models.Post) services.Presentation {
	record, ok := models.MeetingRecordFromPost(post)
	if !ok {
		return services.RenderMeeting(nil, v.coordinator.Provider())
	}

	presentation := services.RenderMeeting(&record, v.coordinator.Provider())
	if err := services.SignForceActions(&presentation); err != nil {
		log.Warn().Err(err).Str("post", post.ID).Msg("An error occurred when signing force-create link.")
	}
	return presentation
}

func (v *Plugin) renderTranscript(post models.Post) services.Presentation {
	_, summaries := v.env.(services.SummaryRequester)
	return services.RenderTranscript(post, summaries)
}
