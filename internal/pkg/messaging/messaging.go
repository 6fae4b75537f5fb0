// Package messaging publishes and consumes domain events over NATS or Kafka
// behind one broker-agnostic API.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/pkg/stacktrace"
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID = "cID"

var (
	// ErrClosed is returned by operations on a closed client.
	ErrClosed = errors.New("messaging: client closed")
	// ErrDestinationRequired is returned when the topic or subject is empty.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Messaging is a broker client that can publish and consume.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// Publisher sends messages to a topic (Kafka) or subject (NATS).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer delivers messages from source to handler until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. A returned error is logged; the message is
// not redelivered.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Body    []byte
	Key     []byte
	Headers map[string]string
}

// Message is a received message.
type Message interface {
	Body() []byte
	Key() []byte
	Header(key string) string
	Source() string
	Timestamp() time.Time
}

// PublishJSON encodes v as JSON and publishes it with the correlation id of
// ctx attached.
func PublishJSON(ctx context.Context, p Publisher, destination, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("messaging: encode %s: %w", destination, err)
	}

	msg := OutgoingMessage{Body: body, Headers: map[string]string{}}
	if key != "" {
		msg.Key = []byte(key)
	}
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		msg.Headers[HeaderCorrelationID] = cID
	}

	return p.Publish(ctx, destination, msg)
}

func handle(ctx context.Context, driver string, handler Handler, msg Message) {
	if cID := msg.Header(HeaderCorrelationID); cID != "" {
		ctx = instrument.SetCorrelationID(ctx, cID)
	}

	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "source", msg.Source(), "panic", rvr, "stack", paths)
				return
			}
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "source", msg.Source(), "panic", rvr, "stack", string(stack))
		}
	}()

	if err := handler(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "messaging handler failed", "driver", driver, "source", msg.Source(), "error", err)
	}
}
