package api

import (
	"errors"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func runAction(c *fiber.Ctx) error {
	name := c.Params("name")

	var data host.ActionRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := hub.RunAction(name, data); err != nil {
		return actionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func actionError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	var merr *services.MeetingError
	switch {
	case errors.Is(err, host.ErrUnknownAction):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid action request",
			"fields":  verr.Fields,
		})
	case errors.As(err, &merr):
		return fiber.NewError(fiber.StatusBadGateway, merr.Message)
	default:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
}
