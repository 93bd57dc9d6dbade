package models

import (
	"fmt"
	"strconv"
	"time"
)

type MeetingStatus = string

const (
	MeetingStatusStarted         = MeetingStatus("STARTED")
	MeetingStatusEnded           = MeetingStatus("ENDED")
	MeetingStatusRecentlyCreated = MeetingStatus("RECENTLY_CREATED")
)

// PostTypeMeeting is the post type the provider plugin attaches meeting records to.
const PostTypeMeeting = "custom_zoom"

// Transcript and chat history posts are plain messages left behind by an ended meeting.
const (
	PostTypeTranscript = "custom_zoom_transcript"
	PostTypeChat       = "custom_zoom_chat"
)

// MeetingRequest is built per user action and never stored.
// A request with an empty ChannelID and a RootID must be resolved to
// the thread's channel before it is sent.
type MeetingRequest struct {
	ChannelID string `json:"channel_id"`
	RootID    string `json:"root_id"`
	Topic     string `json:"topic"`
	ForceNew  bool   `json:"force_new"`
	Personal  bool   `json:"personal"`
}

// MeetingRecord is the server-authored snapshot carried by a meeting post.
// A status change arrives as a new record, records are never mutated.
type MeetingRecord struct {
	Status                    MeetingStatus `json:"meeting_status"`
	MeetingID                 string        `json:"meeting_id"`
	MeetingURL                string        `json:"meeting_link"`
	IsPersonalID              bool          `json:"meeting_personal"`
	Provider                  string        `json:"meeting_provider,omitempty"`
	Topic                     string        `json:"meeting_topic"`
	CreatedAt                 time.Time     `json:"created_at"`
	UpdatedAt                 time.Time     `json:"updated_at"`
	CreatorDisplayName        string        `json:"creator_display_name"`
	CreatedByAutomatedAccount bool          `json:"created_by_automated_account"`
	ChannelID                 string        `json:"channel_id"`
	RootID                    string        `json:"root_id"`
}

// Post is the subset of a chat post the meeting core reads.
type Post struct {
	ID        string         `json:"id"`
	ChannelID string         `json:"channel_id"`
	RootID    string         `json:"root_id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	CreateAt  int64          `json:"create_at"`
	UpdateAt  int64          `json:"update_at"`
	DeleteAt  int64          `json:"delete_at"`
	Props     map[string]any `json:"props"`
}

// MeetingRecordFromPost reads a record out of a meeting post.
// It returns false when the post is not a meeting post.
func MeetingRecordFromPost(post Post) (MeetingRecord, bool) {
	if post.Type != PostTypeMeeting {
		return MeetingRecord{}, false
	}

	record := MeetingRecord{
		Status:                    propString(post.Props, "meeting_status"),
		MeetingID:                 propString(post.Props, "meeting_id"),
		MeetingURL:                propString(post.Props, "meeting_link"),
		IsPersonalID:              propBool(post.Props, "meeting_personal"),
		Provider:                  propString(post.Props, "meeting_provider"),
		Topic:                     propString(post.Props, "meeting_topic"),
		CreatorDisplayName:        propString(post.Props, "meeting_creator_username"),
		CreatedByAutomatedAccount: propBool(post.Props, "from_bot"),
		ChannelID:                 post.ChannelID,
		RootID:                    post.RootID,
	}
	if post.CreateAt > 0 {
		record.CreatedAt = time.UnixMilli(post.CreateAt)
	}
	if post.UpdateAt > 0 {
		record.UpdatedAt = time.UnixMilli(post.UpdateAt)
	}

	return record, true
}

func propString(props map[string]any, key string) string {
	switch val := props[key].(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int, int64, uint, uint64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

func propBool(props map[string]any, key string) bool {
	switch val := props[key].(type) {
	case bool:
		return val
	case string:
		parsed, _ := strconv.ParseBool(val)
		return parsed
	default:
		return false
	}
}
