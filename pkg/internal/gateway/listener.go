package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Dispatcher receives every event the chat server pushes.
type Dispatcher interface {
	Dispatch(event string, data []byte)
}

type frame struct {
	Event  string              `json:"event"`
	Data   jsoniter.RawMessage `json:"data"`
	Seq    int64               `json:"seq"`
	Status string              `json:"status,omitempty"`
}

type challenge struct {
	Seq    int64             `json:"seq"`
	Action string            `json:"action"`
	Data   map[string]string `json:"data"`
}

// Listener keeps one push connection to the chat server open and
// reconnects whenever it drops.
type Listener struct {
	endpoint   string
	token      string
	dispatcher Dispatcher
	dialer     *websocket.Dialer

	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	ReadTimeout time.Duration

	// OnStateChange is called after every connect and disconnect.
	OnStateChange func(connected bool)
}

// WebsocketURL maps a site url to its push endpoint.
func WebsocketURL(siteURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(siteURL, "/"))
	if err != nil {
		return "", err
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported site url scheme %q", parsed.Scheme)
	}
	parsed.Path += "/api/v4/websocket"
	return parsed.String(), nil
}

func NewListener(siteURL, token string, dispatcher Dispatcher) (*Listener, error) {
	endpoint, err := WebsocketURL(siteURL)
	if err != nil {
		return nil, err
	}
	return &Listener{
		endpoint:    endpoint,
		token:       token,
		dispatcher:  dispatcher,
		dialer:      websocket.DefaultDialer,
		MinBackoff:  time.Second,
		MaxBackoff:  time.Minute,
		ReadTimeout: 2 * time.Minute,
	}, nil
}

// Run blocks until ctx is done.
func (v *Listener) Run(ctx context.Context) error {
	backoff := v.MinBackoff
	for {
		connected, err := v.session(ctx)
		if connected {
			v.notify(false)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			backoff = v.MinBackoff
		}

		log.Warn().Err(err).Dur("backoff", backoff).Msg("Gateway connection lost, reconnecting...")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, v.MaxBackoff)
	}
}

func (v *Listener) session(ctx context.Context) (bool, error) {
	conn, _, err := v.dialer.DialContext(ctx, v.endpoint, nil)
	if err != nil {
		return false, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	packet, _ := jsoniter.Marshal(challenge{
		Seq:    1,
		Action: "authentication_challenge",
		Data:   map[string]string{"token": v.token},
	})
	if err := conn.WriteMessage(websocket.TextMessage, packet); err != nil {
		return false, err
	}
	log.Info().Str("endpoint", v.endpoint).Msg("Gateway connected.")
	v.notify(true)

	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(v.ReadTimeout))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(10*time.Second))
	})

	for {
		_ = conn.SetReadDeadline(time.Now().Add(v.ReadTimeout))
		_, packet, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Msg("An error occurred when reading gateway...")
			}
			return true, err
		}

		var msg frame
		if err := jsoniter.Unmarshal(packet, &msg); err != nil {
			log.Debug().Err(err).Msg("Dropped malformed gateway frame.")
			continue
		} else if len(msg.Event) == 0 {
			// Replies to our own actions carry a status instead of an event.
			continue
		}

		v.dispatcher.Dispatch(msg.Event, msg.Data)
	}
}

func (v *Listener) notify(connected bool) {
	if v.OnStateChange != nil {
		v.OnStateChange(connected)
	}
}
