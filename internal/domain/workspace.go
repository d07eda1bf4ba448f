package domain

import "time"

const DefaultCalendarTimeZone = "Asia/Kuala_Lumpur"

type EmailReply struct {
	// MessageID is the email_id returned by the email listing.
	MessageID string
	To        string
	Body      string
}

type CalendarEvent struct {
	ID          string
	Summary     string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	Attendees   []string
}
