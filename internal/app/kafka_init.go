package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/messaging/kafka"
)

// initPublisher создаёт Kafka producer, если заданы брокеры.
// При ошибке подключения сервис продолжает работу без публикации событий.
func initPublisher(cfg Config, logger *log.Entry) (domain.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return kafka.NoopPublisher{}, func() {}
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return kafka.NoopPublisher{}, func() {}
	}

	logger.WithFields(log.Fields{
		"brokers": cfg.KafkaBrokers,
		"topic":   cfg.KafkaTopic,
	}).Info("kafka producer initialized")
	return producer, func() { closeKafka(producer, logger) }
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
