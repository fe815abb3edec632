package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buddyboost/pkg/config"
	"buddyboost/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
)

type EventType string

const (
	EventComment  EventType = "comment"
	EventReaction EventType = "reaction"
)

// Event tells RecipientID that ActorID interacted with one of their posts.
type Event struct {
	Type         EventType `json:"type"`
	RecipientID  string    `json:"user_id"`
	ActorID      string    `json:"actor_id"`
	PostID       string    `json:"post_id"`
	CommentID    string    `json:"comment_id,omitempty"`
	ReactionType string    `json:"reaction_type,omitempty"`
	Priority     int       `json:"priority"`
}

// Publisher is satisfied by *Client; use cases depend on this so the queue stays optional.
type Publisher interface {
	PublishNotification(ctx context.Context, event Event) error
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range []EventType{EventComment, EventReaction} {
		if err := channel.QueueBind(NotificationQueueName, string(key), NotificationExchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue for %s: %w", key, err)
		}
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishNotification publishes event with its type as routing key.
func (c *Client) PublishNotification(ctx context.Context, event Event) error {
	event.Priority = clampPriority(event.Priority)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		NotificationExchange, // exchange
		string(event.Type),   // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     uint8(event.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s event for user %s: %v", event.Type, event.RecipientID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s event to exchange=%s: %s", event.Type, NotificationExchange, string(body))
	return nil
}

// clampPriority keeps p within the queue's 1-10 priority range; unset means 1.
func clampPriority(p int) int {
	switch {
	case p <= 0:
		return 1
	case p > 10:
		return 10
	}
	return p
}
