package api

import (
	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

func upgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func clientGateway(c *websocket.Conn) {
	id := uuid.NewString()

	// Push connection
	hub.AddClient(id, c)
	log.Debug().Str("client", id).Msg("Client attached.")

	// Event loop
	var packet []byte
	var err error

	for {
		var task models.UnifiedCommand
		if _, packet, err = c.ReadMessage(); err != nil {
			break
		} else if err := jsoniter.Unmarshal(packet, &task); err != nil {
			_ = hub.WriteTo(id, models.UnifiedCommand{
				Action:  "error",
				Message: "unable to unmarshal your command, requires json request",
			})
			continue
		}

		message := hub.DealCommand(task)

		if message != nil {
			if err = hub.WriteTo(id, *message); err != nil {
				break
			}
		}
	}

	// Pop connection
	hub.RemoveClient(id)
	log.Debug().Str("client", id).Msg("Client detached.")
}
