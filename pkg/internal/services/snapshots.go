package services

import (
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/database"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// NewMeetingSnapshot copies a meeting post into an archive row.
// Posts that carry no meeting record are rejected.
func NewMeetingSnapshot(post models.Post) (models.MeetingSnapshot, error) {
	record, ok := models.MeetingRecordFromPost(post)
	if !ok {
		return models.MeetingSnapshot{}, fmt.Errorf("post %s carries no meeting record", post.ID)
	}

	return models.MeetingSnapshot{
		PostID:        post.ID,
		ChannelID:     record.ChannelID,
		RootID:        record.RootID,
		Status:        record.Status,
		MeetingID:     record.MeetingID,
		MeetingURL:    record.MeetingURL,
		IsPersonalID:  record.IsPersonalID,
		Provider:      record.Provider,
		Topic:         record.Topic,
		CreatorName:   record.CreatorDisplayName,
		FromBot:       record.CreatedByAutomatedAccount,
		PostCreatedAt: record.CreatedAt,
		PostUpdatedAt: record.UpdatedAt,
		Props:         post.Props,
	}, nil
}

func ArchiveMeetingRecord(post models.Post) (models.MeetingSnapshot, error) {
	snapshot, err := NewMeetingSnapshot(post)
	if err != nil {
		return snapshot, err
	}
	if !database.Enabled() {
		return snapshot, database.ErrNotConfigured
	}

	if err := database.C.Create(&snapshot).Error; err != nil {
		return snapshot, err
	}
	return snapshot, nil
}

func CountMeetingSnapshots(channelID string) (int64, error) {
	if !database.Enabled() {
		return 0, database.ErrNotConfigured
	}

	var count int64
	if err := database.C.Model(&models.MeetingSnapshot{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

// ListMeetingSnapshots returns the newest snapshots of a channel first.
func ListMeetingSnapshots(channelID string, take int, offset int) ([]models.MeetingSnapshot, error) {
	if !database.Enabled() {
		return nil, database.ErrNotConfigured
	}

	var snapshots []models.MeetingSnapshot
	if err := database.C.
		Where("channel_id = ?", channelID).
		Limit(take).Offset(offset).
		Order("post_updated_at DESC").
		Find(&snapshots).Error; err != nil {
		return snapshots, err
	}
	return snapshots, nil
}

func DoAutoSnapshotCleanup() {
	if !database.Enabled() {
		return
	}

	retention := time.Duration(max(database.RetentionDays(), 1)) * 24 * time.Hour
	deadline := time.Now().Add(-retention)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up meeting snapshots...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().Delete(model, "created_at < ?", deadline)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running snapshot cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up meeting snapshots accomplished.")
}
