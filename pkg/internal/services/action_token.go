package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const actionTokenLifetime = 10 * time.Minute

// ErrActionTokensDisabled is returned while no action token secret is configured.
var ErrActionTokensDisabled = errors.New("action tokens are disabled")

// QuickForcePath is where the companion server accepts signed force-create links.
const QuickForcePath = "/api/quick/force"

type ActionClaims struct {
	ChannelID string `json:"channel_id"`
	RootID    string `json:"root_id"`
	Topic     string `json:"topic"`
	jwt.RegisteredClaims
}

// CreateActionToken signs a force-create request so a rendered conflict card
// can carry it as a plain link.
func CreateActionToken(req models.MeetingRequest) (string, error) {
	secret := viper.GetString("security.action_token_secret")
	if len(secret) == 0 {
		return "", ErrActionTokensDisabled
	}

	claims := ActionClaims{
		ChannelID: req.ChannelID,
		RootID:    req.RootID,
		Topic:     req.Topic,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "meeting",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(actionTokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tks, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return tks, nil
}

// QuickForceLink is the force-create link for req, relative to the companion server.
func QuickForceLink(req models.MeetingRequest) (string, error) {
	tk, err := CreateActionToken(req)
	if err != nil {
		return "", err
	}
	return QuickForcePath + "?" + url.Values{"actionToken": {tk}}.Encode(), nil
}

// SignForceActions gives every force-create action of a presentation its link.
// Actions keep their request, so clients able to run actions directly still can.
// Nothing is signed while action tokens are disabled.
func SignForceActions(presentation *Presentation) error {
	for idx, action := range presentation.Actions {
		if action.Kind != ActionForceCreate || action.Request == nil {
			continue
		}
		link, err := QuickForceLink(*action.Request)
		if errors.Is(err, ErrActionTokensDisabled) {
			return nil
		} else if err != nil {
			return err
		}
		presentation.Actions[idx].URL = link
	}
	return nil
}

func ParseActionToken(tk string) (models.MeetingRequest, error) {
	secret := viper.GetString("security.action_token_secret")
	if len(secret) == 0 {
		return models.MeetingRequest{}, ErrActionTokensDisabled
	}

	var claims ActionClaims
	token, err := jwt.ParseWithClaims(tk, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.MeetingRequest{}, err
	}
	if !token.Valid {
		return models.MeetingRequest{}, fmt.Errorf("invalid token")
	}
	return models.MeetingRequest{
		ChannelID: claims.ChannelID,
		RootID:    claims.RootID,
		Topic:     claims.Topic,
		ForceNew:  true,
	}, nil
}
