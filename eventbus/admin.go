package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"unitu-block/logger"
)

// EnsureTopics creates the base, retry and DLQ topics for the given
// Topic when they do not exist yet.
func EnsureTopics(brokers string, topic Topic, numPartitions int) error {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	names := append([]string{topic.Base()}, topic.GetRetryTopics()...)
	names = append(names, topic.DLQ())

	specs := make([]kafka.TopicSpecification, 0, len(names))
	for _, name := range names {
		specs = append(specs, kafka.TopicSpecification{
			Topic:             name,
			NumPartitions:     numPartitions,
			ReplicationFactor: 1,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, specs)
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}

	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			logger.Log.Errorf("failed to create topic %s: %v", result.Topic, result.Error)
		} else {
			logger.Log.Infof("topic %s is ready", result.Topic)
		}
	}

	return nil
}
