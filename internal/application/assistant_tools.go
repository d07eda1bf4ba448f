package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
)

const (
	ToolViewEmails        = "viewAllEmailWithLabels"
	ToolReplyToEmail      = "replyToEmail"
	ToolTodayEvents       = "getTodayCalendarEvents"
	ToolCreateCalendarEvt = "createCalendarEvent"
	ToolEditCalendarEvent = "editCalendarEvent"
)

type viewEmailsArgs struct {
	Label string `json:"label" jsonschema:"filter emails by label, for example work, personal or urgent"`
}

type replyToEmailArgs struct {
	EmailID string `json:"email_id" jsonschema:"the email_id field of an email returned by viewAllEmailWithLabels"`
	To      string `json:"to" jsonschema:"recipient of the reply"`
	Body    string `json:"body" jsonschema:"reply message content"`
}

type todayEventsArgs struct{}

type createEventArgs struct {
	Summary     string   `json:"summary" jsonschema:"event summary"`
	StartTime   string   `json:"start_time" jsonschema:"start time in ISO 8601 format, for example 2025-09-22T09:00:00+08:00"`
	EndTime     string   `json:"end_time" jsonschema:"end time in ISO 8601 format"`
	Location    string   `json:"location,omitempty" jsonschema:"event location"`
	Description string   `json:"description,omitempty" jsonschema:"event description"`
	Attendees   []string `json:"attendees,omitempty" jsonschema:"plain email addresses only, without display names"`
}

type editEventArgs struct {
	EventID   string `json:"event_id" jsonschema:"identifier of the event to edit"`
	StartTime string `json:"start_time" jsonschema:"new start time in ISO 8601 format"`
	EndTime   string `json:"end_time" jsonschema:"new end time in ISO 8601 format"`
	Summary   string `json:"summary" jsonschema:"event summary"`
}

// AssistantTools builds the email and calendar tools exposed to the voice
// model. Handlers hold no state of their own and may run concurrently.
func AssistantTools(workspace ports.Workspace) ([]Tool, error) {
	if workspace == nil {
		return nil, errors.New("workspace is nil")
	}

	builders := []func(ports.Workspace) (Tool, error){
		viewEmailsTool,
		replyToEmailTool,
		todayEventsTool,
		createEventTool,
		editEventTool,
	}

	tools := make([]Tool, 0, len(builders))
	for _, build := range builders {
		tool, err := build(workspace)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}

	return tools, nil
}

func viewEmailsTool(workspace ports.Workspace) (Tool, error) {
	return NewTool(ToolViewEmails,
		"View emails filtered by label. Each email carries an email_id to use with replyToEmail.",
		func(ctx context.Context, args viewEmailsArgs) (json.RawMessage, error) {
			label := strings.TrimSpace(args.Label)
			if label == "" {
				return nil, errors.New("label is required")
			}
			return workspace.ListEmails(ctx, label)
		})
}

func replyToEmailTool(workspace ports.Workspace) (Tool, error) {
	return NewTool(ToolReplyToEmail,
		"Reply to an email. email_id must come from viewAllEmailWithLabels.",
		func(ctx context.Context, args replyToEmailArgs) (json.RawMessage, error) {
			if strings.TrimSpace(args.EmailID) == "" {
				return nil, errors.New("email_id is required")
			}
			// Listed senders come back as "Name <addr>"; the reply endpoint only needs addr.
			parsed, err := mail.ParseAddress(strings.TrimSpace(args.To))
			if err != nil {
				return nil, fmt.Errorf("to: invalid email address %q", args.To)
			}
			to := parsed.Address
			return workspace.ReplyToEmail(ctx, domain.EmailReply{
				MessageID: strings.TrimSpace(args.EmailID),
				To:        to,
				Body:      args.Body,
			})
		})
}

func todayEventsTool(workspace ports.Workspace) (Tool, error) {
	return NewTool(ToolTodayEvents,
		"Get today's calendar events.",
		func(ctx context.Context, _ todayEventsArgs) (json.RawMessage, error) {
			return workspace.TodayEvents(ctx)
		})
}

func createEventTool(workspace ports.Workspace) (Tool, error) {
	return NewTool(ToolCreateCalendarEvt,
		"Create a new calendar event. Requires user confirmation before calling.",
		func(ctx context.Context, args createEventArgs) (json.RawMessage, error) {
			start, end, err := parseEventWindow(args.StartTime, args.EndTime)
			if err != nil {
				return nil, err
			}

			attendees := make([]string, 0, len(args.Attendees))
			for _, raw := range args.Attendees {
				address, err := plainAddress(raw)
				if err != nil {
					return nil, fmt.Errorf("attendees: %w", err)
				}
				attendees = append(attendees, address)
			}

			return workspace.CreateEvent(ctx, domain.CalendarEvent{
				Summary:     args.Summary,
				Start:       start,
				End:         end,
				Location:    args.Location,
				Description: args.Description,
				Attendees:   attendees,
			})
		})
}

func editEventTool(workspace ports.Workspace) (Tool, error) {
	return NewTool(ToolEditCalendarEvent,
		"Update the time and summary of an existing calendar event. Requires user confirmation before calling.",
		func(ctx context.Context, args editEventArgs) (json.RawMessage, error) {
			if strings.TrimSpace(args.EventID) == "" {
				return nil, errors.New("event_id is required")
			}
			start, end, err := parseEventWindow(args.StartTime, args.EndTime)
			if err != nil {
				return nil, err
			}

			return workspace.UpdateEvent(ctx, domain.CalendarEvent{
				ID:      strings.TrimSpace(args.EventID),
				Summary: args.Summary,
				Start:   start,
				End:     end,
			})
		})
}

func parseEventWindow(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(rawStart))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time must be ISO 8601 with offset: %w", err)
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(rawEnd))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time must be ISO 8601 with offset: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end_time is before start_time")
	}
	return start, end, nil
}

// plainAddress rejects the "Name <addr>" form the calendar backend does not accept.
func plainAddress(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid email address %q", raw)
	}
	if parsed.Name != "" || parsed.Address != trimmed {
		return "", fmt.Errorf("%q must be a plain email address without display name", raw)
	}
	return parsed.Address, nil
}
