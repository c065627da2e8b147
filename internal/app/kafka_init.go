package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
)

// initKafkaProducer инициализирует Kafka producer если список brokers не пуст.
// Ошибка подключения не фатальна: сервис продолжает работу без публикации,
// outbox-записи дождутся следующего запуска.
func initKafkaProducer(brokers string, logger *log.Entry) *kafka.Producer {
	if brokers == "" {
		return nil
	}

	list := strings.Split(brokers, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}

	producer, err := kafka.NewProducer(list)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", list).Info("kafka producer initialized")
	return producer
}
