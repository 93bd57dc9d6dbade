package api

import (
	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var hub *host.Hub

func MapAPIs(app *fiber.App, baseURL string, h *host.Hub) {
	hub = h

	api := app.Group(baseURL).Name("API")
	{
		api.Post("/actions/:name", runAction)
		api.Post("/components/:type/render", renderComponent)

		quick := api.Group("/quick")
		{
			quick.Get("/force", quickForceStart)
			quick.Post("/force", quickForceStart)
		}

		api.Get("/channels/:channel/meetings", listMeetings)

		api.Get("/schedule-dialog", getScheduleDialog)
		api.Delete("/schedule-dialog", closeScheduleDialog)

		api.Get("/ws", upgradeMiddleware, websocket.New(clientGateway))
	}
}
