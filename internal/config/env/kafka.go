package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                        []string `env:"KAFKA_BROKERS,required"`
	OrderPlacedTopicName           string   `env:"ORDER_PLACED_TOPIC_NAME,required"`
	PaymentVerifiedTopicName       string   `env:"PAYMENT_VERIFIED_TOPIC_NAME,required"`
	PaymentVerifiedConsumerGroupID string   `env:"PAYMENT_VERIFIED_CONSUMER_GROUP_ID,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string          { return cfg.raw.Brokers }
func (cfg *kafka) OrderPlacedTopic() string   { return cfg.raw.OrderPlacedTopicName }
func (cfg *kafka) PaymentVerifiedTopic() string {
	return cfg.raw.PaymentVerifiedTopicName
}
func (cfg *kafka) PaymentVerifiedConsumerGroupID() string {
	return cfg.raw.PaymentVerifiedConsumerGroupID
}

func (cfg *kafka) OrderPlacedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	return config
}

func (cfg *kafka) PaymentVerifiedConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}
