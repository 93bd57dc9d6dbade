package host

import (
	"errors"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownComponent = errors.New("unknown component")
)

// ClientConn is an attached UI client.
type ClientConn interface {
	WriteMessage(messageType int, data []byte) error
}

type hubClient struct {
	mu   sync.Mutex
	conn ClientConn
}

// pushTimeout bounds how long a side effect waits for room in the outbox.
const pushTimeout = 5 * time.Second

// Hub is the host of the companion server. UI clients attach over a
// websocket and receive every side effect as a UnifiedCommand.
// A hub serves a single user: the focused channel and the scheduling dialog
// are shared, and every attached client is one of that user's screens.
type Hub struct {
	mu         sync.RWMutex
	actions    map[string]Action
	handlers   map[string]EventHandler
	components map[string]Component
	channelID  string

	modal services.ScheduleModal

	clientsMu sync.Mutex
	clients   map[string]*hubClient

	outboxMu sync.RWMutex
	outbox   chan models.UnifiedCommand
	closed   bool
}

func NewHub() *Hub {
	hub := &Hub{
		actions:    make(map[string]Action),
		handlers:   make(map[string]EventHandler),
		components: make(map[string]Component),
		clients:    make(map[string]*hubClient),
		outbox:     make(chan models.UnifiedCommand, 64),
	}
	go hub.pump()
	return hub
}

func (v *Hub) Close() {
	v.outboxMu.Lock()
	defer v.outboxMu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	close(v.outbox)
}

func (v *Hub) RegisterAction(name string, action Action) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.actions[name] = action
}

func (v *Hub) RegisterEventHandler(event string, handler EventHandler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.handlers[event] = handler
}

func (v *Hub) RegisterComponent(postType string, component Component) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.components[postType] = component
}

func (v *Hub) RunAction(name string, req ActionRequest) error {
	v.mu.RLock()
	action, ok := v.actions[name]
	v.mu.RUnlock()
	if !ok {
		return ErrUnknownAction
	}
	return action(req)
}

func (v *Hub) Render(postType string, post models.Post) (services.Presentation, error) {
	v.mu.RLock()
	component, ok := v.components[postType]
	v.mu.RUnlock()
	if !ok {
		return services.Presentation{}, ErrUnknownComponent
	}
	return component(post), nil
}

// Dispatch hands one pushed event to its handler. Events nobody registered
// for are ignored.
func (v *Hub) Dispatch(event string, data []byte) {
	v.mu.RLock()
	handler, ok := v.handlers[event]
	v.mu.RUnlock()
	if !ok {
		return
	}
	handler(data)
}

func (v *Hub) OpenURL(url string) {
	v.push(models.UnifiedCommand{Action: "meetings.open", Payload: map[string]any{"url": url}})
}

func (v *Hub) OpenScheduleDialog(channelID string) {
	v.modal.Open(channelID)
	v.push(models.UnifiedCommand{Action: "schedule.dialog.open", Payload: map[string]any{"channel_id": channelID}})
}

func (v *Hub) CloseScheduleDialog() {
	v.modal.Close()
	v.push(models.UnifiedCommand{Action: "schedule.dialog.close"})
}

func (v *Hub) PublishEphemeral(event models.EphemeralEvent) {
	v.push(models.UnifiedCommand{Action: "posts.ephemeral", Payload: event})
}

func (v *Hub) RequestSummary(post models.Post) {
	v.push(models.UnifiedCommand{Action: "posts.summarize", Payload: map[string]any{
		"post_id":    post.ID,
		"channel_id": post.ChannelID,
	}})
}

func (v *Hub) CurrentChannelID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.channelID
}

func (v *Hub) SetCurrentChannel(channelID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.channelID = channelID
}

func (v *Hub) Modal() *services.ScheduleModal {
	return &v.modal
}

func (v *Hub) AddClient(id string, conn ClientConn) {
	v.clientsMu.Lock()
	defer v.clientsMu.Unlock()
	v.clients[id] = &hubClient{conn: conn}
}

func (v *Hub) RemoveClient(id string) {
	v.clientsMu.Lock()
	defer v.clientsMu.Unlock()
	delete(v.clients, id)
}

func (v *Hub) ClientCount() int {
	v.clientsMu.Lock()
	defer v.clientsMu.Unlock()
	return len(v.clients)
}

// WriteTo sends a command to a single client, serialized with broadcasts.
func (v *Hub) WriteTo(id string, task models.UnifiedCommand) error {
	v.clientsMu.Lock()
	client, ok := v.clients[id]
	v.clientsMu.Unlock()
	if !ok {
		return errors.New("client not attached")
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	return client.conn.WriteMessage(websocket.TextMessage, task.Marshal())
}

// DealCommand handles a command sent by an attached client and returns the reply, if any.
func (v *Hub) DealCommand(task models.UnifiedCommand) *models.UnifiedCommand {
	switch task.Action {
	case "channels.focus":
		var data struct {
			ChannelID string `json:"channel_id"`
		}
		if err := decodePayload(task.Payload, &data); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		v.SetCurrentChannel(data.ChannelID)
		return nil
	case "actions.run":
		var data struct {
			Name    string        `json:"name"`
			Request ActionRequest `json:"request"`
		}
		if err := decodePayload(task.Payload, &data); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		if err := v.RunAction(data.Name, data.Request); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		return &models.UnifiedCommand{Action: "actions.done", Payload: data.Name}
	case "actions.perform":
		var choice services.PresentationAction
		if err := decodePayload(task.Payload, &choice); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		if err := v.RunAction(ActionPerform, ActionRequest{Choice: &choice}); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		return &models.UnifiedCommand{Action: "actions.done", Payload: choice.Kind}
	default:
		return &models.UnifiedCommand{
			Action:  "error",
			Message: "command not found",
		}
	}
}

func decodePayload(payload any, out any) error {
	raw, err := jsoniter.Marshal(payload)
	if err != nil {
		return err
	}
	return jsoniter.Unmarshal(raw, out)
}

// push queues a command for every client. Pushing after Close is a no-op.
func (v *Hub) push(task models.UnifiedCommand) {
	v.outboxMu.RLock()
	defer v.outboxMu.RUnlock()
	if v.closed {
		return
	}

	select {
	case v.outbox <- task:
	case <-time.After(pushTimeout):
		log.Error().Str("action", task.Action).Msg("Client outbox stayed full, dropping command.")
	}
}

func (v *Hub) pump() {
	for task := range v.outbox {
		v.broadcast(task)
	}
}

func (v *Hub) broadcast(task models.UnifiedCommand) {
	packet := task.Marshal()

	v.clientsMu.Lock()
	clients := lo.Entries(v.clients)
	v.clientsMu.Unlock()

	for _, entry := range clients {
		entry.Value.mu.Lock()
		err := entry.Value.conn.WriteMessage(websocket.TextMessage, packet)
		entry.Value.mu.Unlock()
		if err != nil {
			log.Warn().Err(err).Str("client", entry.Key).Msg("An error occurred when pushing command to client.")
			v.RemoveClient(entry.Key)
		}
	}
}
