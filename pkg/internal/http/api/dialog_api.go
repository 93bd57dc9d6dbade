package api

import (
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getScheduleDialog(c *fiber.Ctx) error {
	state, channelID := hub.Modal().State()
	return c.JSON(fiber.Map{
		"open":       state == services.ModalOpen,
		"channel_id": channelID,
	})
}

func closeScheduleDialog(c *fiber.Ctx) error {
	hub.CloseScheduleDialog()
	return c.SendStatus(fiber.StatusNoContent)
}
