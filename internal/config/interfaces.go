package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Kafka interface {
	Brokers() []string
	OrderPlacedTopic() string
	PaymentVerifiedTopic() string
	PaymentVerifiedConsumerGroupID() string
	OrderPlacedProducerConfig() *sarama.Config
	PaymentVerifiedConsumerConfig() *sarama.Config
}

type Gateway interface {
	BaseURL() string
	APIKey() string
	Timeout() time.Duration
	Currency() string
}
