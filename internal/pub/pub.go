package pub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement-service/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const TransactionEventsTopic = "transaction-events"

// TransactionEvent is the wire form of a committed settlement fact.
type TransactionEvent struct {
	EventType      string    `json:"event_type"` // settlement.completed, withdrawal.requested
	UserID         int64     `json:"user_id"`
	AuthorID       int64     `json:"author_id,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	TransactionID  int64     `json:"transaction_id,omitempty"`
	WithdrawalID   int64     `json:"withdrawal_id,omitempty"`
	Amount         string    `json:"amount,omitempty"`
	AuthorAmount   string    `json:"author_amount,omitempty"`
	PlatformAmount string    `json:"platform_amount,omitempty"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// TransactionEventPublisher writes settlement events to Kafka. Callers
// treat failures as non-fatal: the unit of work has already committed.
type TransactionEventPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewTransactionEventPublisher(brokers []string, logger *zap.Logger) *TransactionEventPublisher {
	return &TransactionEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  TransactionEventsTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

func (p *TransactionEventPublisher) publish(ctx context.Context, key string, event *TransactionEvent) error {
	event.Timestamp = time.Now()
	event.Currency = domain.LedgerCurrency

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("transaction event published",
		zap.String("event_type", event.EventType),
		zap.Int64("user_id", event.UserID),
	)
	return nil
}

func (p *TransactionEventPublisher) SettlementCompleted(ctx context.Context, buyerID, authorID int64, res *domain.SettlementResult) error {
	return p.publish(ctx, res.Reference, &TransactionEvent{
		EventType:      "settlement.completed",
		UserID:         buyerID,
		AuthorID:       authorID,
		Reference:      res.Reference,
		TransactionID:  res.TransactionID,
		AuthorAmount:   res.AuthorAmount.String(),
		PlatformAmount: res.PlatformAmount.String(),
		Status:         "completed",
	})
}

func (p *TransactionEventPublisher) WithdrawalRequested(ctx context.Context, w *domain.Withdrawal) error {
	event := &TransactionEvent{
		EventType:    "withdrawal.requested",
		UserID:       w.UserID,
		WithdrawalID: w.ID,
		Amount:       w.Amount.String(),
		Status:       string(w.Status),
	}
	if w.TransactionID != nil {
		event.TransactionID = *w.TransactionID
	}
	return p.publish(ctx, fmt.Sprintf("withdrawal-%d", w.ID), event)
}

func (p *TransactionEventPublisher) Close() error {
	return p.writer.Close()
}
