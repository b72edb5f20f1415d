package feed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
)

func quietLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

func TestRedisFeedPublish(t *testing.T) {
	ctx := context.Background()
	event := persistence.WalletEvent{
		AccountID:    "acc-1",
		Balance:      11_000_000,
		TotalWagered: 5_000_000,
		Level:        2,
		OccurredAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Publishes the event as JSON", func(t *testing.T) {
		client, rmock := redismock.NewClientMock()
		payload, err := json.Marshal(event)
		require.NoError(t, err)
		rmock.ExpectPublish("wallet-events", payload).SetVal(1)

		f := NewRedisFeed(client, "wallet-events", quietLogger(t))
		assert.NoError(t, f.Publish(ctx, event))
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("Surfaces transport failures", func(t *testing.T) {
		client, rmock := redismock.NewClientMock()
		payload, err := json.Marshal(event)
		require.NoError(t, err)
		rmock.ExpectPublish("wallet-events", payload).SetErr(errors.New("connection refused"))

		f := NewRedisFeed(client, "wallet-events", quietLogger(t))
		assert.Error(t, f.Publish(ctx, event))
	})
}

func TestRedisFeedClose(t *testing.T) {
	t.Run("Close before any subscription is a no-op", func(t *testing.T) {
		client, _ := redismock.NewClientMock()
		f := NewRedisFeed(client, "wallet-events", quietLogger(t))
		assert.NoError(t, f.Close())
	})
}
