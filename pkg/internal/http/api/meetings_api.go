package api

import (
	"git.solsynth.dev/hypernet/meeting/pkg/internal/config"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/database"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type renderedSnapshot struct {
	models.MeetingSnapshot
	Presentation services.Presentation `json:"presentation"`
}

// clampPage keeps a page between 1 and 100 items, starting at or after the first one.
func clampPage(take, offset int) (int, int) {
	return min(max(take, 1), 100), max(offset, 0)
}

func listMeetings(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)
	channelID := c.Params("channel")

	if !database.Enabled() {
		return fiber.NewError(fiber.StatusNotFound, database.ErrNotConfigured.Error())
	}
	take, offset = clampPage(take, offset)

	count, err := services.CountMeetingSnapshots(channelID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	snapshots, err := services.ListMeetingSnapshots(channelID, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items := make([]renderedSnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		record := snapshot.Record()
		items = append(items, renderedSnapshot{
			MeetingSnapshot: snapshot,
			Presentation:    services.RenderMeeting(&record, config.ProviderName()),
		})
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}
