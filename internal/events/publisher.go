package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

//go:generate mockgen -destination=../mocks/mock_publisher.go -package=mocks github.com/Ryanbarcelos/fidelize-sub001/internal/events Publisher

const (
	Exchange = "loyalty.events"

	TypePointsAdded     = "card.points_added"
	TypePointsRemoved   = "card.points_removed"
	TypeRewardCollected = "card.reward_collected"
)

// CardEvent is published after every committed card mutation.
type CardEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	CardID     string    `json:"card_id"`
	UserID     string    `json:"user_id"`
	CompanyID  string    `json:"company_id"`
	Points     int       `json:"points"`
	Balance    int       `json:"balance"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishCardEvent(ctx context.Context, event CardEvent) error
	Close()
}

// NoopPublisher is used when RabbitMQ is not configured or unreachable.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishCardEvent(ctx context.Context, event CardEvent) error {
	if p.logger != nil {
		p.logger.Debug("event publish skipped", "type", event.Type, "card_id", event.CardID)
	}
	return nil
}

func (p *NoopPublisher) Close() {}

// AMQPPublisher publishes card events to a durable topic exchange.
type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *slog.Logger
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

func NewAMQPPublisher(amqpURL string, logger *slog.Logger) (*AMQPPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{conn: conn, channel: ch, logger: logger}, nil
}

func (p *AMQPPublisher) PublishCardEvent(ctx context.Context, event CardEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, Exchange, event.Type, false, false, msg)
	if err == nil {
		return nil
	}

	// One retry on a fresh channel.
	p.logger.Warn("event publish failed; reopening channel", "type", event.Type, "err", err)
	ch, chErr := p.conn.Channel()
	if chErr != nil {
		return chErr
	}
	p.channel = ch
	return p.channel.PublishWithContext(ctx, Exchange, event.Type, false, false, msg)
}

func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
