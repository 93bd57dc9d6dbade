package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/transport"
	"github.com/stretchr/testify/assert"
)

func TestParseProviderError(t *testing.T) {
	for name, tc := range map[string]struct {
		raw        string
		structured string
	}{
		"json with message":    {raw: `{"message":"email mismatch"}`, structured: "email mismatch"},
		"trailing newline":     {raw: "{\"code\":124,\"message\":\"Invalid access token.\"}\n", structured: "Invalid access token."},
		"leading whitespace":   {raw: " {\"message\":\"x\"}"},
		"json without message": {raw: `{"code":1}`},
		"message not a string": {raw: `{"message":42}`},
		"empty message":        {raw: `{"message":""}`},
		"broken json":          {raw: `{"message":`},
		"json array":           {raw: `[{"message":"x"}]`},
		"plain text":           {raw: "Forbidden"},
		"text mentioning json": {raw: `failed: {"message":"x"}`},
		"empty":                {raw: ""},
	} {
		t.Run(name, func(t *testing.T) {
			perr := ParseProviderError(tc.raw)
			assert.Equal(t, tc.raw, perr.Raw)
			assert.Equal(t, tc.structured, perr.Structured)
			assert.Equal(t, tc.structured != "", perr.IsStructured())
		})
	}
}

func TestDescribeFailureStructuredMessageIsKeptVerbatim(t *testing.T) {
	messages := []string{
		"email mismatch",
		"We could not verify your account in Zoom.",
		"quotes \" and unicode ✓",
	}
	for _, message := range messages {
		raw := fmt.Sprintf(`{"message":%q}`, message)
		err := &transport.TransportError{Path: "/api/v1/meetings", StatusCode: http.StatusBadRequest, Message: raw}

		got := DescribeFailure("Zoom", GenericStartFailure, err)
		assert.Equal(t, "Zoom error: "+message, got)
		assert.Contains(t, got, message)
	}
}

func TestDescribeFailureFallsBackToGeneric(t *testing.T) {
	for name, err := range map[string]error{
		"nil":             nil,
		"plain transport": &transport.TransportError{Path: "/p", StatusCode: http.StatusInternalServerError, Message: "boom"},
		"network":         &transport.TransportError{Path: "/p", Cause: errors.New("connection refused")},
		"plain error":     errors.New("something odd"),
		"broken envelope": &transport.TransportError{Path: "/p", StatusCode: http.StatusBadRequest, Message: "{not json"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, GenericStartFailure, DescribeFailure("Zoom", GenericStartFailure, err))
		})
	}
}

func TestDescribeFailureReadsNonTransportErrors(t *testing.T) {
	err := errors.New(`{"message":"token expired"}`)
	assert.Equal(t, "Zoom error: token expired", DescribeFailure("Zoom", GenericStartFailure, err))
}
