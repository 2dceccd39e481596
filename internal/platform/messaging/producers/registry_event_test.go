package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
)

// MockKafkaWriter is shared across package test files
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestRegistryEventProducer_Publish(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	topic := "registry_events"
	ctx := context.Background()

	to := uuid.New()
	transaction := &sharetx.Transaction{
		ID:              uuid.New(),
		TenantID:        "tenant-acme",
		Type:            shared.TransactionTypeNewIssue,
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ToShareholderID: &to,
		ShareClass:      shared.ShareClassCommon,
		NumberOfShares:  1000,
		ShareNumberFrom: 1,
		ShareNumberTo:   1000,
		NominalValue:    0.1,
		VotesPerShare:   1,
	}

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &RegistryEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			if string(msg.Key) != transaction.TenantID {
				return false
			}
			var decoded sharetx.Transaction
			if err := json.Unmarshal(msg.Value, &decoded); err != nil {
				return false
			}
			return decoded.ID == transaction.ID && decoded.Type == shared.TransactionTypeNewIssue
		})).Return(nil).Once()

		err := producer.Publish(ctx, transaction.TenantID, transaction)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &RegistryEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.Publish(ctx, transaction.TenantID, transaction)
		require.Error(t, err)
		assert.True(t, errors.Is(err, writerError) || strings.Contains(err.Error(), writerError.Error()))
		mockWriter.AssertExpectations(t)
	})
}

func TestRegistryEventProducer_Close(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	t.Run("SuccessfulClose", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &RegistryEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  "registry_events",
		}
		mockWriter.On("Close").Return(nil).Once()
		require.NoError(t, producer.Close())
		mockWriter.AssertExpectations(t)
	})

	t.Run("CloseReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &RegistryEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  "registry_events",
		}
		closeError := errors.New("kafka close error")
		mockWriter.On("Close").Return(closeError).Once()
		err := producer.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), closeError.Error())
		mockWriter.AssertExpectations(t)
	})
}
