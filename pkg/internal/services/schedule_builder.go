package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"github.com/go-playground/validator/v10"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the fields a schedule form got wrong.
// It stays with the form and never reaches the coordinator.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for key := range v.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, v.Fields[key]))
	}
	return "invalid schedule request: " + strings.Join(parts, ", ")
}

// BuildScheduleRequest validates a form and packages it for the coordinator.
func BuildScheduleRequest(channelID string, form models.ScheduleForm) (models.ScheduleRequest, error) {
	fields := make(map[string]string)

	if !isWholeNumber(form.DurationHours) {
		fields["duration_hours"] = "must be a number"
	} else if form.DurationHours < 0 || form.DurationHours > 24 {
		fields["duration_hours"] = "must be between 0 and 24"
	}
	if !isWholeNumber(form.DurationMinutes) {
		fields["duration_minutes"] = "must be a number"
	} else if form.DurationMinutes < 0 || form.DurationMinutes > 59 {
		fields["duration_minutes"] = "must be between 0 and 59"
	}

	idType := form.MeetingIDType
	if len(idType) == 0 {
		idType = models.MeetingIDTypePersonal
	}

	req := models.ScheduleRequest{
		ChannelID:         channelID,
		Topic:             strings.TrimSpace(form.Topic),
		StartTime:         form.StartTime,
		MeetingIDType:     idType,
		AnnounceToChannel: form.AnnounceToChannel,
		RemindChannel:     form.RemindChannel,
	}
	durationInvalid := len(fields) > 0
	if !durationInvalid {
		req.DurationMinutes = int(form.DurationHours)*60 + int(form.DurationMinutes)
	}

	if err := validation.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return req, err
		}
		for _, item := range verrs {
			key := jsonFieldName(item.Field())
			if _, exists := fields[key]; exists {
				continue
			}
			if key == "duration_minutes" && durationInvalid {
				continue
			}
			fields[key] = describeTag(item.Tag())
		}
	}

	if len(fields) > 0 {
		return models.ScheduleRequest{}, &ValidationError{Fields: fields}
	}
	return req, nil
}

func isWholeNumber(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0) && val == math.Trunc(val)
}

func jsonFieldName(field string) string {
	switch field {
	case "ChannelID":
		return "channel_id"
	case "Topic":
		return "topic"
	case "StartTime":
		return "start_time"
	case "DurationMinutes":
		return "duration_minutes"
	case "MeetingIDType":
		return "meeting_id_type"
	default:
		return strings.ToLower(field)
	}
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "this is required"
	case "gt":
		return "duration must be longer than zero"
	case "lte":
		return "duration is too long"
	case "oneof":
		return "unknown meeting id type"
	default:
		return "invalid value"
	}
}
