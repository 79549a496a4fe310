// Package eventbus publishes generation events to NATS JetStream.
package eventbus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamName is the JetStream stream that retains generation events
	StreamName = "GENERATIONS"
	// SubjectGenerationCompleted carries one event per finished generation
	SubjectGenerationCompleted = "generation.completed"
)

// Connect dials natsURL and ensures the generation stream exists. An empty
// URL disables the bus and returns a nil *Bus, which is safe to use.
func Connect(natsURL string, logger *zap.Logger) (*Bus, error) {
	if natsURL == "" {
		logger.Info("NATS_URL not set, event bus disabled")
		return nil, nil
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("polyglot-api"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	if err := ensureStream(js); err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info("NATS and JetStream initialized", zap.String("stream", StreamName))
	return &Bus{nc: nc, js: js, logger: logger, publishTimeout: defaultPublishTimeout}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	if _, err := js.StreamInfo(StreamName); err == nil {
		return nil
	}

	_, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"generation.>"},
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("add stream %s: %w", StreamName, err)
	}
	return nil
}
