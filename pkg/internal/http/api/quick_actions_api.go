package api

import (
	"fmt"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// quickForceStart creates a new meeting from a signed link.
// It is what the conflict card's force-create button points to when the
// client can not call actions directly, e.g. from a notification.
func quickForceStart(c *fiber.Ctx) error {
	actionTk := c.Query("actionToken")
	if len(actionTk) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "action token is required")
	}

	req, err := services.ParseActionToken(actionTk)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("action token is invalid: %v", err))
	}

	if err := hub.RunAction(host.ActionForceStartMeeting, host.ActionRequest{
		ChannelID: req.ChannelID,
		RootID:    req.RootID,
		Topic:     req.Topic,
	}); err != nil {
		return actionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
