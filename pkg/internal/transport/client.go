package transport

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Client issues authenticated JSON requests against one base url.
// It never retries, each call is a single attempt.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		timeout: timeout,
	}
}

func (v *Client) BaseURL() string {
	return v.baseURL
}

// Post sends body as JSON and decodes a successful response into out.
// out may be nil when the caller does not need the response.
func (v *Client) Post(path string, body any, out any) error {
	agent := fiber.Post(v.baseURL + path)
	v.prepare(agent)
	agent.JSON(body)
	return v.do(agent, path, out)
}

func (v *Client) Get(path string, out any) error {
	agent := fiber.Get(v.baseURL + path)
	v.prepare(agent)
	return v.do(agent, path, out)
}

func (v *Client) prepare(agent *fiber.Agent) {
	agent.JSONEncoder(jsoniter.ConfigCompatibleWithStandardLibrary.Marshal).
		JSONDecoder(jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Set(fiber.HeaderXRequestedWith, "XMLHttpRequest")
	if len(v.token) > 0 {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+v.token)
	}
	if v.timeout > 0 {
		agent.Timeout(v.timeout)
	}
}

func (v *Client) do(agent *fiber.Agent, path string, out any) error {
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return &TransportError{Path: path, Cause: err}
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 && code == 0 {
		log.Debug().Errs("errors", errs).Str("path", path).Msg("Request did not reach the server.")
		return &TransportError{Path: path, Cause: errors.Join(errs...)}
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return &TransportError{
			Path:       path,
			StatusCode: code,
			Message:    string(body),
		}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(body, out); err != nil {
		return &TransportError{
			Path:       path,
			StatusCode: code,
			Message:    string(body),
			Cause:      err,
		}
	}
	return nil
}
