package models

import (
	"time"

	"gorm.io/datatypes"
)

// MeetingSnapshot archives one observed MeetingRecord.
// Every status change is a new row.
type MeetingSnapshot struct {
	BaseModel

	PostID        string            `json:"post_id" gorm:"index"`
	ChannelID     string            `json:"channel_id" gorm:"index"`
	RootID        string            `json:"root_id"`
	Status        MeetingStatus     `json:"status"`
	MeetingID     string            `json:"meeting_id"`
	MeetingURL    string            `json:"meeting_url"`
	IsPersonalID  bool              `json:"is_personal_id"`
	Provider      string            `json:"provider"`
	Topic         string            `json:"topic"`
	CreatorName   string            `json:"creator_name"`
	FromBot       bool              `json:"from_bot"`
	PostCreatedAt time.Time         `json:"post_created_at"`
	PostUpdatedAt time.Time         `json:"post_updated_at"`
	Props         datatypes.JSONMap `json:"props"`
}

func (v MeetingSnapshot) Record() MeetingRecord {
	return MeetingRecord{
		Status:                    v.Status,
		MeetingID:                 v.MeetingID,
		MeetingURL:                v.MeetingURL,
		IsPersonalID:              v.IsPersonalID,
		Provider:                  v.Provider,
		Topic:                     v.Topic,
		CreatedAt:                 v.PostCreatedAt,
		UpdatedAt:                 v.PostUpdatedAt,
		CreatorDisplayName:        v.CreatorName,
		CreatedByAutomatedAccount: v.FromBot,
		ChannelID:                 v.ChannelID,
		RootID:                    v.RootID,
	}
}
