package models

import "time"

type MeetingIDType = string

const (
	MeetingIDTypePersonal = MeetingIDType("personal_meeting_id")
	MeetingIDTypeUnique   = MeetingIDType("unique_meeting_id")
)

// ScheduleForm is what the scheduling widget emits, before validation.
// Durations are floats so a cleared number input can arrive as NaN.
type ScheduleForm struct {
	Topic             string        `json:"topic"`
	StartTime         time.Time     `json:"start_time"`
	DurationHours     float64       `json:"duration_hours"`
	DurationMinutes   float64       `json:"duration_minutes"`
	MeetingIDType     MeetingIDType `json:"meeting_id_type"`
	AnnounceToChannel bool          `json:"post_meeting_announcement"`
	RemindChannel     bool          `json:"post_meeting_reminder"`
}

type ScheduleRequest struct {
	ChannelID         string        `json:"channel_id" validate:"required"`
	Topic             string        `json:"topic" validate:"required"`
	StartTime         time.Time     `json:"start_time" validate:"required"`
	DurationMinutes   int           `json:"duration_minutes" validate:"gt=0,lte=1499"`
	MeetingIDType     MeetingIDType `json:"meeting_id_type" validate:"oneof=personal_meeting_id unique_meeting_id"`
	AnnounceToChannel bool          `json:"announce_to_channel"`
	RemindChannel     bool          `json:"remind_channel"`
}
