package host

import (
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
)

// ActionRequest is what a UI surface sends when the user triggers an action.
// Empty ChannelID and RootID mean the channel the user is looking at.
// Choice is the rendered action picked on a post.
type ActionRequest struct {
	ChannelID string                       `json:"channel_id"`
	RootID    string                       `json:"root_id"`
	Topic     string                       `json:"topic"`
	Personal  bool                         `json:"personal"`
	Schedule  *models.ScheduleForm         `json:"schedule,omitempty"`
	Choice    *services.PresentationAction `json:"choice,omitempty"`
}

type Action func(req ActionRequest) error

// EventHandler receives the raw data of one pushed event.
type EventHandler func(data []byte)

// Component renders a post of the type it was registered for.
type Component func(post models.Post) services.Presentation

// Registry is how the chat client exposes its extension points.
type Registry interface {
	RegisterAction(name string, action Action)
	RegisterEventHandler(event string, handler EventHandler)
	RegisterComponent(postType string, component Component)
}

// ScheduleDialogCloser is implemented by environments that own the
// scheduling dialog and can dismiss it after a submission.
type ScheduleDialogCloser interface {
	CloseScheduleDialog()
}
