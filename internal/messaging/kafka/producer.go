package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// Producer публикует события об изменениях записей в Kafka.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

// NewProducer создаёт синхронный producer с подтверждением от всех реплик.
func NewProducer(brokers []string, topic string, logger *log.Entry) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	if strings.TrimSpace(topic) == "" {
		topic = TopicRecordEvents
	}

	producer, err := sarama.NewSyncProducer(brokers, newProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newProducer(producer, topic, logger), nil
}

// Сетевые таймауты и ретраи ограничивают время одной отправки в sarama.
const (
	netTimeout     = 2 * time.Second
	produceTimeout = 2 * time.Second
	retryMax       = 3
	retryBackoff   = 100 * time.Millisecond
)

func newProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = retryMax
	config.Producer.Retry.Backoff = retryBackoff
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Producer.Timeout = produceTimeout
	config.Net.MaxOpenRequests = 1
	config.Net.DialTimeout = netTimeout
	config.Net.ReadTimeout = netTimeout
	config.Net.WriteTimeout = netTimeout
	config.Metadata.Retry.Max = retryMax
	config.Metadata.Retry.Backoff = retryBackoff
	return config
}

func newProducer(producer sarama.SyncProducer, topic string, logger *log.Entry) *Producer {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger.WithField("component", "kafka-producer"),
	}
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

// Publish отправляет событие и ждёт подтверждения брокера, но не дольше,
// чем позволяет ctx. SendMessage контекст не принимает, поэтому после
// отмены сообщение всё ещё может быть доставлено.
func (p *Producer) Publish(ctx context.Context, event domain.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := MessageKey(event)
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventID), Value: []byte(event.ID)},
			{Key: []byte(HeaderEventType), Value: []byte(EventType(event))},
			{Key: []byte(HeaderEntity), Value: []byte(event.Entity)},
		},
		Timestamp: time.Now(),
	}

	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(msg)
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	var res sendResult
	select {
	case res = <-done:
	case <-ctx.Done():
		p.logger.WithError(ctx.Err()).WithFields(log.Fields{
			"topic": p.topic,
			"key":   key,
		}).Warn("kafka send did not finish in time")
		return fmt.Errorf("failed to send message: %w", ctx.Err())
	}

	if err := res.err; err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic": p.topic,
			"key":   key,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":      p.topic,
		"key":        key,
		"event_type": EventType(event),
		"partition":  res.partition,
		"offset":     res.offset,
	}).Debug("message sent to kafka")

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// NoopPublisher используется, когда брокеры не настроены.
type NoopPublisher struct{}

// Publish ничего не делает.
func (NoopPublisher) Publish(context.Context, domain.ChangeEvent) error { return nil }

var (
	_ domain.EventPublisher = (*Producer)(nil)
	_ domain.EventPublisher = NoopPublisher{}
)
