package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

// Event is the message published after a post or ledger mutation commits.
// Downstream consumers (notifications, feed fan-out) are outside this
// service; publication is best-effort and never blocks a caller's response.
type Event struct {
	Kind   string    `json:"kind"` // post.created, post.liked, post.unliked, ...
	PostID uint      `json:"post_id"`
	UserID uint      `json:"user_id"`
	At     time.Time `json:"at"`
}

type Producer interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type producer struct {
	w *kgo.Writer
}

// NewProducer creates a kafka writer for interaction events. An empty broker
// list disables publishing and returns nil, which every call site treats as
// "no event pipeline configured".
func NewProducer(brokers, topic string) Producer {
	addr := strings.TrimSpace(brokers)
	if addr == "" {
		return nil
	}
	w := &kgo.Writer{
		Addr:         kgo.TCP(strings.Split(addr, ",")...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &producer{w: w}
}

func (p *producer) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kgo.Message{Key: []byte(ev.Kind), Value: b, Time: ev.At})
}

func (p *producer) Close() error { return p.w.Close() }
