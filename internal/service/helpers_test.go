package service

import (
	"context"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// recordingBroadcaster captures broadcast events in order.
type recordingBroadcaster struct {
	events []Event
}

func (r *recordingBroadcaster) Broadcast(event Event) {
	r.events = append(r.events, event)
}

// recordingFileRemover captures delete requests and optionally fails them.
type recordingFileRemover struct {
	deleted []string
	err     error
}

func (r *recordingFileRemover) Delete(_ context.Context, fileURL string) error {
	r.deleted = append(r.deleted, fileURL)
	return r.err
}

// fixedScorer always returns the same canned evaluation.
func fixedScorer(score int, comment string) ScoringService {
	return &cannedScoring{
		book:      []AIScore{{Score: score, Comment: comment}},
		pick:      func(int) int { return 0 },
		sanitizer: bluemonday.StrictPolicy(),
		logger:    testLogger(),
	}
}

func eventsOfType(events []Event, eventType string) []Event {
	matched := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
