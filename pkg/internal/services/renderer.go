package services

import (
	"fmt"
	"math"
	"time"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
)

type PresentationKind = string

const (
	PresentationNone       = PresentationKind("none")
	PresentationJoin       = PresentationKind("join")
	PresentationSummary    = PresentationKind("summary")
	PresentationConflict   = PresentationKind("conflict")
	PresentationTranscript = PresentationKind("transcript")
)

type ActionKind = string

const (
	ActionJoinMeeting   = ActionKind("join_meeting")
	ActionForceCreate   = ActionKind("force_create")
	ActionJoinExisting  = ActionKind("join_existing")
	ActionCreateSummary = ActionKind("create_summary")
)

type PresentationAction struct {
	Kind    ActionKind             `json:"kind"`
	Label   string                 `json:"label"`
	URL     string                 `json:"url,omitempty"`
	Request *models.MeetingRequest `json:"request,omitempty"`
	Post    *models.Post           `json:"post,omitempty"`
}

// Presentation is what a meeting record should look like, without any styling.
type Presentation struct {
	Kind            PresentationKind     `json:"kind"`
	PreText         string               `json:"pre_text,omitempty"`
	Title           string               `json:"title,omitempty"`
	IdentityLine    string               `json:"identity_line,omitempty"`
	Message         string               `json:"message,omitempty"`
	Subtitle        string               `json:"subtitle,omitempty"`
	StartedAt       *time.Time           `json:"started_at,omitempty"`
	DurationMinutes int                  `json:"duration_minutes,omitempty"`
	Actions         []PresentationAction `json:"actions,omitempty"`
}

// RenderMeeting maps a record to presentation intent. It has no side effects.
func RenderMeeting(record *models.MeetingRecord, provider string) Presentation {
	if record == nil {
		return Presentation{Kind: PresentationNone}
	}

	title := record.Topic
	if len(title) == 0 {
		title = fmt.Sprintf("%s Meeting", provider)
	}

	switch record.Status {
	case models.MeetingStatusStarted:
		preText := "I have started a meeting"
		if record.CreatedByAutomatedAccount {
			preText = fmt.Sprintf("%s has started a meeting", record.CreatorDisplayName)
		}
		return Presentation{
			Kind:         PresentationJoin,
			PreText:      preText,
			Title:        title,
			IdentityLine: identityLine(record),
			Actions: []PresentationAction{
				{Kind: ActionJoinMeeting, Label: "JOIN MEETING", URL: record.MeetingURL},
			},
		}
	case models.MeetingStatusEnded:
		preText := "I have ended the meeting"
		if record.CreatedByAutomatedAccount {
			preText = fmt.Sprintf("%s has ended the meeting", record.CreatorDisplayName)
		}
		started := record.CreatedAt
		return Presentation{
			Kind:            PresentationSummary,
			PreText:         preText,
			Title:           title,
			IdentityLine:    identityLine(record),
			Subtitle:        "Meeting Summary",
			StartedAt:       &started,
			DurationMinutes: MeetingLength(record.CreatedAt, record.UpdatedAt),
		}
	case models.MeetingStatusRecentlyCreated:
		preText := fmt.Sprintf("%s already created a call with a different provider recently", record.CreatorDisplayName)
		if len(record.Provider) > 0 {
			preText = fmt.Sprintf("%s already created a %s call recently", record.CreatorDisplayName, record.Provider)
		}
		actions := []PresentationAction{
			{
				Kind:  ActionForceCreate,
				Label: "CREATE NEW MEETING",
				Request: &models.MeetingRequest{
					ChannelID: record.ChannelID,
					RootID:    record.RootID,
					Topic:     record.Topic,
					ForceNew:  true,
				},
			},
		}
		if len(record.MeetingURL) > 0 {
			actions = append(actions, PresentationAction{
				Kind:  ActionJoinExisting,
				Label: "JOIN EXISTING MEETING",
				URL:   record.MeetingURL,
			})
		}
		return Presentation{
			Kind:     PresentationConflict,
			PreText:  preText,
			Title:    title,
			Subtitle: "What do you want to do?",
			Actions:  actions,
		}
	default:
		return Presentation{Kind: PresentationNone}
	}
}

// RenderTranscript shows a transcript or chat history post as its message.
// The summary action is offered only when something can take the request.
func RenderTranscript(post models.Post, summaries bool) Presentation {
	presentation := Presentation{
		Kind:    PresentationTranscript,
		Message: post.Message,
	}
	if summaries {
		presentation.Actions = []PresentationAction{
			{Kind: ActionCreateSummary, Label: "Create meeting summary", Post: &post},
		}
	}
	return presentation
}

// MeetingLength is the elapsed time in whole minutes, rounded up and never below one.
func MeetingLength(createdAt, updatedAt time.Time) int {
	elapsed := updatedAt.Sub(createdAt)
	minutes := int(math.Ceil(float64(elapsed.Milliseconds()) / 60000))
	return max(minutes, 1)
}

func identityLine(record *models.MeetingRecord) string {
	if record.IsPersonalID {
		return "Personal Meeting ID (PMI) : " + record.MeetingID
	}
	return "Meeting ID : " + record.MeetingID
}

// PerformAction carries out a user's choice on a rendered record.
// Join actions only need a browsing context, force-create goes back through
// the coordinator with ForceNew set.
// Summaries need an environment implementing SummaryRequester.
func PerformAction(coordinator *Coordinator, env Environment, action PresentationAction) error {
	switch action.Kind {
	case ActionForceCreate:
		if action.Request == nil {
			return fmt.Errorf("force create action carries no request")
		}
		req := *action.Request
		req.ForceNew = true
		return coordinator.StartMeeting(req)
	case ActionJoinMeeting, ActionJoinExisting:
		if len(action.URL) == 0 {
			return fmt.Errorf("join action carries no meeting url")
		}
		env.OpenURL(action.URL)
		return nil
	case ActionCreateSummary:
		requester, ok := env.(SummaryRequester)
		if !ok {
			return fmt.Errorf("meeting summaries are not available")
		} else if action.Post == nil {
			return fmt.Errorf("summary action carries no post")
		}
		requester.RequestSummary(*action.Post)
		return nil
	default:
		return fmt.Errorf("unknown action %q", action.Kind)
	}
}
