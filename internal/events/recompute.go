// Package events carries leaderboard recompute triggers over NATS so the
// grading path never blocks on ranking work.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skor-go-api/internal/dto"
)

// DefaultRecomputeSubject is the NATS subject recompute events travel on.
const DefaultRecomputeSubject = "skor.leaderboard.recompute"

// Connect dials the NATS server at the given URL.
func Connect(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}

type recomputeEvent struct {
	ClassID     uint      `json:"class_id"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// RecomputePublisher publishes leaderboard recompute triggers to NATS.
type RecomputePublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewRecomputePublisher builds a publisher bound to the given subject. An
// empty subject falls back to DefaultRecomputeSubject.
func NewRecomputePublisher(conn *nats.Conn, subject string, logger zerolog.Logger) *RecomputePublisher {
	if subject == "" {
		subject = DefaultRecomputeSubject
	}

	return &RecomputePublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "recompute_publisher").Logger(),
	}
}

// PublishRecompute emits a recompute trigger for the class scope.
func (p *RecomputePublisher) PublishRecompute(ctx context.Context, classID uint) error {
	if p.conn == nil {
		return nil
	}

	payload, err := json.Marshal(recomputeEvent{ClassID: classID, TriggeredAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish recompute event: %w", err)
	}

	p.logger.Debug().Uint("class_id", classID).Msg("recompute event published")
	return nil
}

// Recomputer recomputes the leaderboard for one class scope.
type Recomputer interface {
	Recompute(ctx context.Context, classID uint) (dto.LeaderboardResponse, error)
}

// RecomputeConsumer subscribes to recompute events and drives the
// leaderboard service. Instances in the same queue group share the work.
type RecomputeConsumer struct {
	conn        *nats.Conn
	subject     string
	queueGroup  string
	leaderboard Recomputer
	logger      zerolog.Logger
}

// NewRecomputeConsumer builds a consumer for recompute events.
func NewRecomputeConsumer(conn *nats.Conn, subject string, leaderboard Recomputer, logger zerolog.Logger) *RecomputeConsumer {
	if subject == "" {
		subject = DefaultRecomputeSubject
	}

	return &RecomputeConsumer{
		conn:        conn,
		subject:     subject,
		queueGroup:  "skor-leaderboard",
		leaderboard: leaderboard,
		logger:      logger.With().Str("component", "recompute_consumer").Logger(),
	}
}

// Start subscribes and processes events until the context is cancelled.
func (c *RecomputeConsumer) Start(ctx context.Context) error {
	sub, err := c.conn.QueueSubscribe(c.subject, c.queueGroup, func(msg *nats.Msg) {
		c.handle(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to recompute subject: %w", err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to drain recompute subscription")
		}
	}()

	return nil
}

func (c *RecomputeConsumer) handle(ctx context.Context, payload []byte) {
	var event recomputeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Warn().Err(err).Msg("invalid recompute event payload")
		return
	}

	if event.ClassID == 0 {
		c.logger.Warn().Msg("recompute event without class scope")
		return
	}

	if _, err := c.leaderboard.Recompute(ctx, event.ClassID); err != nil {
		c.logger.Error().Err(err).Uint("class_id", event.ClassID).Msg("leaderboard recompute failed")
		return
	}
}
