package services

import "git.solsynth.dev/hypernet/meeting/pkg/internal/models"

// Environment is the host the core runs in. Every side effect the core
// has on the user's screen goes through it.
type Environment interface {
	// OpenURL opens url in a new browsing context. It must not block.
	OpenURL(url string)
	OpenScheduleDialog(channelID string)
	PublishEphemeral(event models.EphemeralEvent)
	CurrentChannelID() string
}

// SummaryRequester is implemented by environments that can hand a
// transcript post to an assistant for summarizing.
type SummaryRequester interface {
	RequestSummary(post models.Post)
}

// MeetingTransport is the slice of the transport client the coordinator uses.
type MeetingTransport interface {
	Post(path string, body any, out any) error
}

type ThreadResolver interface {
	ResolveThreadChannel(threadID string) (string, error)
}
