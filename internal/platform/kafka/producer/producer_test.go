package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(Config{Brokers: " , "}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092 ,, b:9092 "))
	assert.Empty(t, splitBrokers(""))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("localhost:9092")
	assert.Equal(t, "all", cfg.Acks)
	assert.Equal(t, "localhost:9092", cfg.Brokers)
	assert.Positive(t, cfg.DeliveryTimeout)
}
