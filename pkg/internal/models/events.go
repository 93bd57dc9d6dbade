package models

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// PushEvent is one of MeetingStarted or ScheduleDialogRequested.
type PushEvent interface {
	pushEvent()
}

type MeetingStarted struct {
	MeetingURL string `json:"meeting_url"`
}

type ScheduleDialogRequested struct {
	ChannelID string `json:"channelId"`
}

func (MeetingStarted) pushEvent()          {}
func (ScheduleDialogRequested) pushEvent() {}

const VisibilitySenderOnly = "sender_only"

// EphemeralEvent is shown only to the acting user and is not stored.
type EphemeralEvent struct {
	ID         string    `json:"id"`
	ChannelID  string    `json:"channel_id"`
	RootID     string    `json:"root_id"`
	Message    string    `json:"message"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

type UnifiedCommand struct {
	Action  string `json:"w"`
	Message string `json:"m,omitempty"`
	Payload any    `json:"p"`
}

func (v UnifiedCommand) Marshal() []byte {
	data, _ := jsoniter.Marshal(v)
	return data
}

func UnifiedCommandFromError(err error) UnifiedCommand {
	return UnifiedCommand{
		Action:  "error",
		Message: err.Error(),
	}
}

// ProviderError is a failure text from the provider, with the message
// recovered from an embedded JSON envelope when there is one.
type ProviderError struct {
	Raw        string `json:"raw"`
	Structured string `json:"structured,omitempty"`
}

func (v ProviderError) IsStructured() bool {
	return len(v.Structured) > 0
}
