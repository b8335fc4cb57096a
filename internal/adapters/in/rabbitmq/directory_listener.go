package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	pin "github.com/suchimauz/dental-clinic-gateway/internal/core/ports/in"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

// DirectoryListener слушает события изменений справочников и приемов на
// стороне клиники и сбрасывает соответствующие кэши шлюза.
type DirectoryListener struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	directory pin.DirectoryUseCase
	cachePort out.CachePort
	cfg       *config.Config
	logger    out.LoggerPort
}

type ResourceType string

const (
	ResourceTypeDentist     ResourceType = "Dentist"
	ResourceTypePatient     ResourceType = "Patient"
	ResourceTypeAppointment ResourceType = "Appointment"
)

// Сообщение из очереди clinic.directory.events
type ResourceChangedMessage struct {
	Resource ResourceType `json:"resource"`
	ID       int64        `json:"id"`
}

func NewDirectoryListener(directory pin.DirectoryUseCase, cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) (*DirectoryListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &DirectoryListener{
		conn:      conn,
		channel:   channel,
		directory: directory,
		cachePort: cachePort,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func (l *DirectoryListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("directory.events.process_failed", out.LogFields{
						"error": err.Error(),
					})
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("directory.events.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *DirectoryListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var message ResourceChangedMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}

	switch message.Resource {
	case ResourceTypeDentist, ResourceTypePatient:
		l.directory.InvalidateDirectory(ctx)
		l.logger.Debug("directory.events.invalidated", out.LogFields{
			"resource": message.Resource,
			"id":       message.ID,
		})
	case ResourceTypeAppointment:
		if l.cachePort != nil {
			l.cachePort.InvalidateAppointment(ctx, message.ID)
		}
		l.logger.Debug("directory.events.appointment_invalidated", out.LogFields{
			"id": message.ID,
		})
	default:
		l.logger.Warn("directory.events.unknown_resource", out.LogFields{
			"resource": message.Resource,
		})
	}

	return nil
}

func (l *DirectoryListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
