package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/queue"
	"github.com/iliyamo/electramart-api/internal/repository"
)

// EventPublisher announces stored transactions.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, ev queue.TransactionRecordedEvent) error
}

// SupportService records support queries and payment transactions.
type SupportService struct {
	Queries      repository.QueryStore
	Transactions repository.TransactionStore
	Events       EventPublisher
	Log          *logrus.Logger
}

func NewSupportService(st *repository.Store, events EventPublisher, log *logrus.Logger) *SupportService {
	return &SupportService{Queries: st.Queries, Transactions: st.Transactions, Events: events, Log: log}
}

func (s *SupportService) RecordQuery(ctx context.Context, q *model.Query) error {
	if err := s.Queries.Create(ctx, q); err != nil {
		return fmt.Errorf("create query: %w", err)
	}
	return nil
}

func (s *SupportService) ListQueries(ctx context.Context) ([]*model.Query, error) {
	return s.Queries.List(ctx)
}

// RecordTransaction stores t and publishes a transaction.recorded event.  A
// publish failure is logged and does not fail the request.
func (s *SupportService) RecordTransaction(ctx context.Context, t *model.Transaction, recordedBy string) error {
	if err := s.Transactions.Create(ctx, t); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	if s.Events == nil {
		return nil
	}
	ev := queue.TransactionRecordedEvent{
		TransactionID: t.ID,
		Accountholder: t.Accountholder,
		AccountMasked: queue.MaskAccount(t.Accountnumber),
		Amount:        t.Amount,
		Pincode:       t.Pincode,
		RecordedBy:    recordedBy,
		RecordedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.Events.PublishTransactionRecorded(ctx, ev); err != nil {
		s.Log.WithError(err).WithField("transaction_id", t.ID).Warn("publish transaction.recorded failed")
	}
	return nil
}

func (s *SupportService) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	return s.Transactions.List(ctx)
}
