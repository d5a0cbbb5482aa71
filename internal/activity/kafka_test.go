package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"callsync/internal/platform/config"
)

func TestNewKafkaPublisher_DisabledWithoutBrokers(t *testing.T) {
	pub, err := NewKafkaPublisher(context.Background(), config.Kafka{Topic: "callsync.activity"})
	require.NoError(t, err)
	require.Nil(t, pub)
}
