package services

import "context"

type loggedEntry struct {
	eventID *string
	action  string
	outcome string
	message *string
}

type stubLogWriter struct {
	entries []loggedEntry
}

func (s *stubLogWriter) CreateLog(ctx context.Context, eventID *string, action string, outcome string, message *string) error {
	var copiedEvent *string
	if eventID != nil {
		value := *eventID
		copiedEvent = &value
	}

	var copiedMessage *string
	if message != nil {
		value := *message
		copiedMessage = &value
	}

	s.entries = append(s.entries, loggedEntry{
		eventID: copiedEvent,
		action:  action,
		outcome: outcome,
		message: copiedMessage,
	})
	return nil
}
