package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ParticipationsQueue reçoit chaque participation enregistrée avec succès.
const ParticipationsQueue = "participation_recorded"

type Publisher interface {
	Publish(ctx context.Context, queueName string, message interface{}) error
	Close()
}

type Consumer interface {
	Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error
	Close()
}

type rabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitPublisher(url string) (Publisher, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	return &rabbitPublisher{conn: conn, channel: ch}, nil
}

func dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Déclarer la queue pour s'assurer qu'elle existe
	_, err = ch.QueueDeclare(
		ParticipationsQueue, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return conn, ch, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, queueName string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *rabbitPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

type rabbitConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitConsumer(url string) (Consumer, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	return &rabbitConsumer{conn: conn, channel: ch}, nil
}

func (c *rabbitConsumer) Consume(ctx context.Context, queueName string, handler func(ctx context.Context, body []byte) error) error {
	msgs, err := c.channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack : on veut des acks manuels
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			processCtx := context.Background()
			if err := handler(processCtx, d.Body); err != nil {
				slog.Error("failed to process queue message", "queue", queueName, "error", err)
				// Pas de requeue : un message malformé tournerait en boucle
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	return nil
}

func (c *rabbitConsumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
