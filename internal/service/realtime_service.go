package service

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/observability"
)

const (
	// EventNewSubmission carries the full record of a freshly created submission.
	EventNewSubmission = "new_submission"
	// EventSubmissionUpdated carries the full record after a teacher assessment.
	EventSubmissionUpdated = "submission_updated"
	// EventSubmissionDeleted carries only the removed submission's id.
	EventSubmissionDeleted = "submission_deleted"
)

const subscriberBufferSize = 16

// Event is the JSON envelope pushed to every live viewer on a store mutation.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broadcaster fans an event out to all currently registered viewers.
type Broadcaster interface {
	Broadcast(event Event)
}

// Subscriber is one registered live viewer. Events are delivered on a buffered
// channel; a viewer that cannot keep up has events dropped, never queued.
type Subscriber struct {
	events chan Event
	closed chan struct{}
	hub    *RealtimeHub
	once   sync.Once
}

// Events returns the channel delivering broadcast events to this viewer.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Done is closed when the subscription has been torn down.
func (s *Subscriber) Done() <-chan struct{} {
	return s.closed
}

// Close unregisters the viewer. Safe to call any number of times.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		close(s.closed)
		s.hub.unregister(s)
	})
}

// RealtimeHub keeps the set of open live connections and broadcasts store
// mutations to each of them, best-effort.
type RealtimeHub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	logger      zerolog.Logger
}

// NewRealtimeHub builds an empty hub.
func NewRealtimeHub(logger zerolog.Logger) *RealtimeHub {
	return &RealtimeHub{
		subscribers: make(map[*Subscriber]struct{}),
		logger:      logger.With().Str("component", "realtime_hub").Logger(),
	}
}

// Subscribe registers a new live viewer and returns its handle.
func (h *RealtimeHub) Subscribe() *Subscriber {
	subscriber := &Subscriber{
		events: make(chan Event, subscriberBufferSize),
		closed: make(chan struct{}),
		hub:    h,
	}

	h.mu.Lock()
	h.subscribers[subscriber] = struct{}{}
	h.mu.Unlock()

	observability.RealtimeConnections().Inc()
	h.logger.Debug().Msg("viewer connected")

	return subscriber
}

func (h *RealtimeHub) unregister(subscriber *Subscriber) {
	h.mu.Lock()
	_, registered := h.subscribers[subscriber]
	delete(h.subscribers, subscriber)
	h.mu.Unlock()

	if registered {
		observability.RealtimeConnections().Dec()
		h.logger.Debug().Msg("viewer disconnected")
	}
}

// Broadcast delivers the event to every registered viewer without blocking.
// A full subscriber buffer drops the event for that viewer only.
func (h *RealtimeHub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for subscriber := range h.subscribers {
		select {
		case subscriber.events <- event:
		default:
			observability.RealtimeDropped().Inc()
			h.logger.Warn().Str("type", event.Type).Msg("dropping event for slow viewer")
		}
	}

	observability.RealtimeEvents().WithLabelValues(event.Type).Inc()
}

// ServeConnection pumps broadcast events into the websocket until the peer
// disconnects. The protocol is server-to-client only; inbound frames are read
// solely to detect the close.
func (h *RealtimeHub) ServeConnection(conn *websocket.Conn) {
	subscriber := h.Subscribe()
	defer subscriber.Close()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				subscriber.Close()
				return
			}
		}
	}()

	for {
		select {
		case event := <-subscriber.events:
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug().Err(err).Msg("realtime write loop terminated")
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				h.logger.Debug().Err(err).Msg("realtime ping failed")
				return
			}
		case <-subscriber.closed:
			return
		}
	}
}
