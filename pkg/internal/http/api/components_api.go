package api

import (
	"errors"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func renderComponent(c *fiber.Ctx) error {
	postType := c.Params("type")

	var post models.Post
	if err := exts.BindAndValidate(c, &post); err != nil {
		return err
	} else if len(post.Type) == 0 {
		post.Type = postType
	}

	presentation, err := hub.Render(postType, post)
	if errors.Is(err, host.ErrUnknownComponent) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(presentation)
}
