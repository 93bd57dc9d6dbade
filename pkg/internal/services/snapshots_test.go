package services

import (
	"testing"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/database"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meetingPost() models.Post {
	return models.Post{
		ID:        "P1",
		ChannelID: "C1",
		RootID:    "R1",
		Type:      models.PostTypeMeeting,
		CreateAt:  1_700_000_000_000,
		UpdateAt:  1_700_000_120_000,
		Props: map[string]any{
			"meeting_status":           "ENDED",
			"meeting_id":               float64(123456),
			"meeting_link":             "https://provider/j/123456",
			"meeting_topic":            "Retro",
			"meeting_creator_username": "ana",
		},
	}
}

func TestNewMeetingSnapshot(t *testing.T) {
	snapshot, err := NewMeetingSnapshot(meetingPost())
	require.NoError(t, err)

	assert.Equal(t, "P1", snapshot.PostID)
	assert.Equal(t, "C1", snapshot.ChannelID)
	assert.Equal(t, models.MeetingStatusEnded, snapshot.Status)
	assert.Equal(t, "123456", snapshot.MeetingID)
	assert.Equal(t, "Retro", snapshot.Topic)

	record := snapshot.Record()
	assert.Equal(t, 2, MeetingLength(record.CreatedAt, record.UpdatedAt))
}

func TestNewMeetingSnapshotRejectsOtherPosts(t *testing.T) {
	post := meetingPost()
	post.Type = ""
	_, err := NewMeetingSnapshot(post)
	assert.Error(t, err)
}

func TestArchiveWithoutDatabase(t *testing.T) {
	previous := database.C
	database.C = nil
	t.Cleanup(func() { database.C = previous })

	_, err := ArchiveMeetingRecord(meetingPost())
	assert.ErrorIs(t, err, database.ErrNotConfigured)

	_, err = ListMeetingSnapshots("C1", 10, 0)
	assert.ErrorIs(t, err, database.ErrNotConfigured)

	assert.NotPanics(t, DoAutoSnapshotCleanup)
}
