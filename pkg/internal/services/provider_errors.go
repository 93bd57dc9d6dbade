package services

import (
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/transport"
	jsoniter "github.com/json-iterator/go"
)

const (
	GenericStartFailure    = "Error occurred while starting the meeting."
	GenericScheduleFailure = "Error occurred while scheduling the meeting."
)

// ParseProviderError tries to read a JSON envelope with a message field out of raw.
// Anything else is kept as raw text only. It never fails.
func ParseProviderError(raw string) models.ProviderError {
	result := models.ProviderError{Raw: raw}

	if !strings.HasPrefix(raw, "{") {
		return result
	}

	var envelope map[string]any
	if err := jsoniter.UnmarshalFromString(raw, &envelope); err != nil {
		return result
	}
	if message, ok := envelope["message"].(string); ok && len(message) > 0 {
		result.Structured = message
	}

	return result
}

// FormatProviderError turns a parsed error into the text shown to the user,
// or generic when nothing provider specific was found.
func FormatProviderError(provider, generic string, perr models.ProviderError) string {
	if !perr.IsStructured() {
		return generic
	}
	return fmt.Sprintf("%s error: %s", provider, perr.Structured)
}

// DescribeFailure derives the user facing message for a failed call.
func DescribeFailure(provider, generic string, err error) string {
	if err == nil {
		return generic
	}

	raw := err.Error()
	var terr *transport.TransportError
	if errors.As(err, &terr) {
		raw = terr.Message
	}

	return FormatProviderError(provider, generic, ParseProviderError(raw))
}
