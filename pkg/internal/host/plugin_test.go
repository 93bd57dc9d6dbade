package host

import (
	"bytes"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRegistry struct {
	actions    map[string]Action
	handlers   map[string]EventHandler
	components map[string]Component
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{
		actions:    make(map[string]Action),
		handlers:   make(map[string]EventHandler),
		components: make(map[string]Component),
	}
}

func (v *recordingRegistry) RegisterAction(name string, action Action) {
	v.actions[name] = action
}

func (v *recordingRegistry) RegisterEventHandler(event string, handler EventHandler) {
	v.handlers[event] = handler
}

func (v *recordingRegistry) RegisterComponent(postType string, component Component) {
	v.components[postType] = component
}

type postCall struct {
	path string
	body []byte
}

type stubTransport struct {
	mu       sync.Mutex
	calls    []postCall
	response string
	err      error
}

func (v *stubTransport) Post(path string, body any, out any) error {
	raw, _ := jsoniter.Marshal(body)
	v.mu.Lock()
	v.calls = append(v.calls, postCall{path: path, body: raw})
	v.mu.Unlock()
	if v.err != nil {
		return v.err
	}
	if out != nil && len(v.response) > 0 {
		return jsoniter.UnmarshalFromString(v.response, out)
	}
	return nil
}

func newTestPlugin(transport *stubTransport) (*Plugin, *Terminal, *recordingRegistry) {
	term := NewTerminal(&bytes.Buffer{}, "C0")
	coordinator := services.NewCoordinator(transport, nil, term, "Zoom")
	plugin := NewPlugin("zoom", coordinator, term)
	registry := newRecordingRegistry()
	plugin.Initialize(registry)
	return plugin, term, registry
}

func TestInitializeRegistersEverything(t *testing.T) {
	_, _, registry := newTestPlugin(&stubTransport{})

	for _, name := range []string{ActionStartMeeting, ActionForceStartMeeting, ActionOpenScheduleDialog, ActionScheduleMeeting, ActionPerform} {
		assert.Contains(t, registry.actions, name)
	}
	assert.Contains(t, registry.handlers, "custom_zoom_meeting_started")
	assert.Contains(t, registry.handlers, "custom_zoom_open_schedule_meeting_dialog")
	assert.NotContains(t, registry.handlers, EventPosted)
	assert.Contains(t, registry.components, models.PostTypeMeeting)
	assert.Contains(t, registry.components, models.PostTypeTranscript)
	assert.Contains(t, registry.components, models.PostTypeChat)
}

func TestInitializeWithArchive(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, "C0")
	plugin := NewPlugin("zoom", services.NewCoordinator(&stubTransport{}, nil, term, "Zoom"), term)
	plugin.Archive = true
	registry := newRecordingRegistry()
	plugin.Initialize(registry)

	assert.Contains(t, registry.handlers, EventPosted)
	assert.Contains(t, registry.handlers, EventPostEdited)
	assert.NotPanics(t, func() {
		registry.handlers[EventPosted]([]byte(`{"post":"{\"id\":\"P1\",\"type\":\"custom_zoom\",\"props\":{\"meeting_status\":\"STARTED\"}}"}`))
		registry.handlers[EventPosted]([]byte(`{"post":"not json"}`))
		registry.handlers[EventPosted]([]byte(`garbage`))
	})
}

func TestStartMeetingActionUsesCurrentChannel(t *testing.T) {
	transport := &stubTransport{response: `{"meeting_url":"https://provider/j/1"}`}
	_, term, registry := newTestPlugin(transport)

	require.NoError(t, registry.actions[ActionStartMeeting](ActionRequest{Topic: "Standup"}))

	require.Len(t, transport.calls, 1)
	assert.Equal(t, "/api/v1/meetings", transport.calls[0].path)
	assert.JSONEq(t, `{"channel_id":"C0","topic":"Standup","root_id":""}`, string(transport.calls[0].body))
	assert.Equal(t, []string{"https://provider/j/1"}, term.Opened())
}

func TestForceStartMeetingAction(t *testing.T) {
	transport := &stubTransport{response: `{"meeting_url":"https://provider/j/2"}`}
	_, _, registry := newTestPlugin(transport)

	require.NoError(t, registry.actions[ActionForceStartMeeting](ActionRequest{ChannelID: "C9"}))
	require.Len(t, transport.calls, 1)
	assert.Equal(t, "/api/v1/meetings?force=true", transport.calls[0].path)
}

func TestStartMeetingActionFailure(t *testing.T) {
	transport := &stubTransport{err: errors.New("connection refused")}
	_, term, registry := newTestPlugin(transport)

	err := registry.actions[ActionStartMeeting](ActionRequest{ChannelID: "C1"})
	var merr *services.MeetingError
	require.ErrorAs(t, err, &merr)

	events := term.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "C1", events[0].ChannelID)
}

func TestScheduleDialogLifecycle(t *testing.T) {
	transport := &stubTransport{}
	_, term, registry := newTestPlugin(transport)

	require.NoError(t, registry.actions[ActionOpenScheduleDialog](ActionRequest{}))
	state, channel := term.Modal().State()
	assert.Equal(t, services.ModalOpen, state)
	assert.Equal(t, "C0", channel)

	form := models.ScheduleForm{
		Topic:           "Planning",
		StartTime:       time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC),
		DurationHours:   1,
		DurationMinutes: 0,
	}
	require.NoError(t, registry.actions[ActionScheduleMeeting](ActionRequest{Schedule: &form}))
	assert.False(t, term.Modal().IsOpen())
	require.Len(t, transport.calls, 1)
	assert.Equal(t, "/api/v1/schedule-meeting", transport.calls[0].path)
}

func TestScheduleMeetingActionRejectsInvalidForm(t *testing.T) {
	transport := &stubTransport{}
	_, term, registry := newTestPlugin(transport)
	term.OpenScheduleDialog("C0")

	var verr *services.ValidationError
	err := registry.actions[ActionScheduleMeeting](ActionRequest{})
	require.ErrorAs(t, err, &verr)

	err = registry.actions[ActionScheduleMeeting](ActionRequest{Schedule: &models.ScheduleForm{}})
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, transport.calls)
	assert.True(t, term.Modal().IsOpen())
}

func TestPushEventHandlers(t *testing.T) {
	_, term, registry := newTestPlugin(&stubTransport{})

	registry.handlers["custom_zoom_meeting_started"]([]byte(`{"meeting_url":"https://provider/j/3"}`))
	registry.handlers["custom_zoom_meeting_started"]([]byte(`{"meeting_url":""}`))
	registry.handlers["custom_zoom_open_schedule_meeting_dialog"]([]byte(`{"channelId":"C7"}`))

	assert.Equal(t, []string{"https://provider/j/3"}, term.Opened())
	_, channel := term.Modal().State()
	assert.Equal(t, "C7", channel)
}

func TestMeetingComponent(t *testing.T) {
	_, _, registry := newTestPlugin(&stubTransport{})
	render := registry.components[models.PostTypeMeeting]

	presentation := render(models.Post{
		Type:  models.PostTypeMeeting,
		Props: map[string]any{"meeting_status": "STARTED", "meeting_id": "42", "meeting_link": "https://provider/j/42"},
	})
	assert.Equal(t, services.PresentationJoin, presentation.Kind)
	assert.Equal(t, "Zoom Meeting", presentation.Title)
	assert.Equal(t, "Meeting ID : 42", presentation.IdentityLine)

	assert.Equal(t, services.PresentationNone, render(models.Post{Type: "text"}).Kind)
}

func TestConflictComponentCarriesSignedLink(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("security.action_token_secret", "s3cret")
	_, _, registry := newTestPlugin(&stubTransport{})

	presentation := registry.components[models.PostTypeMeeting](models.Post{
		Type:      models.PostTypeMeeting,
		ChannelID: "C4",
		Props:     map[string]any{"meeting_status": "RECENTLY_CREATED", "meeting_creator_username": "ana"},
	})
	require.Equal(t, services.PresentationConflict, presentation.Kind)
	require.Len(t, presentation.Actions, 1)

	link, err := url.Parse(presentation.Actions[0].URL)
	require.NoError(t, err)
	assert.Equal(t, services.QuickForcePath, link.Path)
	req, err := services.ParseActionToken(link.Query().Get("actionToken"))
	require.NoError(t, err)
	assert.Equal(t, "C4", req.ChannelID)
}

func TestTranscriptComponentWithoutAssistant(t *testing.T) {
	_, _, registry := newTestPlugin(&stubTransport{})

	presentation := registry.components[models.PostTypeChat](models.Post{Type: models.PostTypeChat, Message: "chat history"})
	assert.Equal(t, services.PresentationTranscript, presentation.Kind)
	assert.Equal(t, "chat history", presentation.Message)
	assert.Empty(t, presentation.Actions)
}

func TestPerformActionRunsChoice(t *testing.T) {
	transport := &stubTransport{response: `{"meeting_url":"https://provider/j/6"}`}
	_, term, registry := newTestPlugin(transport)

	require.NoError(t, registry.actions[ActionPerform](ActionRequest{Choice: &services.PresentationAction{
		Kind: services.ActionJoinExisting,
		URL:  "https://provider/j/old",
	}}))
	assert.Equal(t, []string{"https://provider/j/old"}, term.Opened())
	assert.Empty(t, transport.calls)

	var verr *services.ValidationError
	assert.ErrorAs(t, registry.actions[ActionPerform](ActionRequest{}), &verr)
}

func TestTerminalOutput(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, "C0")

	term.OpenURL("https://provider/j/5")
	term.PublishEphemeral(models.EphemeralEvent{Message: "Zoom error: nope"})

	assert.Contains(t, buf.String(), "https://provider/j/5")
	assert.Contains(t, buf.String(), "Zoom error: nope")

	term.SetCurrentChannel("C2")
	assert.Equal(t, "C2", term.CurrentChannelID())
}
