package events

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Kafka struct{ cl *kgo.Client }

func NewKafka(brokers []string) (*Kafka, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, err
	}
	return &Kafka{cl: cl}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	return k.cl.ProduceSync(ctx, record).FirstErr()
}

func (k *Kafka) Close() { k.cl.Close() }
