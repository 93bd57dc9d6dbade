package services

import (
	"testing"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterMeetingStartedOpensURL(t *testing.T) {
	env := &recordingEnv{}
	router := NewRouter("zoom", env)

	router.HandleRaw("custom_zoom_meeting_started", []byte(`{"meeting_url":"https://provider/j/77"}`))
	assert.Equal(t, []string{"https://provider/j/77"}, env.opened)
}

func TestRouterMeetingStartedWithoutURLIsNoop(t *testing.T) {
	env := &recordingEnv{}
	router := NewRouter("zoom", env)

	for _, payload := range []string{`{}`, `{"meeting_url":""}`, `null`, ``, `{"meeting_url":`, `[]`, `"x"`} {
		assert.NotPanics(t, func() {
			router.HandleRaw("custom_zoom_meeting_started", []byte(payload))
		})
	}
	router.OnMeetingStarted(models.MeetingStarted{})
	router.Route(nil)
	router.Route((*models.MeetingStarted)(nil))

	assert.Empty(t, env.opened)
	assert.Empty(t, env.dialogs)
}

func TestRouterScheduleDialogUsesEventChannel(t *testing.T) {
	env := &recordingEnv{current: "C0"}
	router := NewRouter("zoom", env)

	router.HandleRaw("custom_zoom_open_schedule_meeting_dialog", []byte(`{"channelId":"C3"}`))
	router.HandleRaw("custom_zoom_open_schedule_meeting_dialog", []byte(`{}`))

	assert.Equal(t, []string{"C3", "C0"}, env.dialogs)
}

func TestRouterIgnoresOtherEvents(t *testing.T) {
	env := &recordingEnv{}
	router := NewRouter("zoom", env)

	router.HandleRaw("custom_jitsi_meeting_started", []byte(`{"meeting_url":"https://x"}`))
	router.HandleRaw("posted", []byte(`{"post":"{}"}`))

	assert.Empty(t, env.opened)
}

func TestRouterDecodePushEvent(t *testing.T) {
	router := NewRouter("zoom", &recordingEnv{})

	event, err := router.DecodePushEvent(MeetingStartedEvent("zoom"), []byte(`{"meeting_url":"u"}`))
	require.NoError(t, err)
	assert.Equal(t, models.MeetingStarted{MeetingURL: "u"}, event)

	event, err = router.DecodePushEvent(ScheduleDialogEvent("zoom"), []byte(`{"channelId":"C1"}`))
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleDialogRequested{ChannelID: "C1"}, event)

	event, err = router.DecodePushEvent("hello", []byte(`{}`))
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestRouterRouteAcceptsPointers(t *testing.T) {
	env := &recordingEnv{current: "C0"}
	router := NewRouter("zoom", env)

	router.Route(&models.MeetingStarted{MeetingURL: "https://p/1"})
	router.Route(&models.ScheduleDialogRequested{})

	assert.Equal(t, []string{"https://p/1"}, env.opened)
	assert.Equal(t, []string{"C0"}, env.dialogs)
}
