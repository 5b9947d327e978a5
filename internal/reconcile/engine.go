// Package reconcile merges validated licence records into the store with
// an idempotent, per-record upsert.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"licencewatch/internal/domain"
	"licencewatch/internal/port"
)

// Engine performs idempotent reconciliation of licence records against the
// store. Each record gets its own transaction, so one failure rolls back
// only that record and the rest of the batch continues.
type Engine struct {
	store port.LicenceStore
}

// NewEngine creates a reconciliation engine over a licence store.
func NewEngine(store port.LicenceStore) *Engine {
	return &Engine{store: store}
}

// Reconcile decides the fate of one candidate record: duplicate when the
// exact dedup key already exists, inserted otherwise. The existence check
// and the insert run in one transaction, and an insert that still hits the
// uniqueness constraint, meaning a concurrent run won the race, is reported as a
// duplicate, not an error.
func (e *Engine) Reconcile(ctx context.Context, rec *domain.LicenceRecord) (domain.Outcome, error) {
	outcome := domain.OutcomeFailed
	err := e.store.WithinTx(ctx, func(tx port.LicenceTx) error {
		_, err := tx.FindByKey(ctx, rec.Key())
		if err == nil {
			outcome = domain.OutcomeDuplicate
			return nil
		}
		if !errors.Is(err, domain.ErrLicenceNotFound) {
			return fmt.Errorf("checking for existing licence: %w", err)
		}

		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CreatedAt = time.Now().UTC()

		if err := tx.Insert(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrDuplicateLicence) {
				outcome = domain.OutcomeDuplicate
				return nil
			}
			return fmt.Errorf("inserting licence: %w", err)
		}
		outcome = domain.OutcomeInserted
		return nil
	})
	if err != nil {
		return domain.OutcomeFailed, err
	}
	return outcome, nil
}

// ReconcileAll runs Reconcile over a batch, tallying outcomes and defects
// into the report. A failed record is recorded and the batch continues; a
// store that cannot hand out transactions at all aborts the remaining pass
// for this document, since every further record would fail the same way.
func (e *Engine) ReconcileAll(ctx context.Context, records []*domain.LicenceRecord, report *domain.BatchReport) error {
	for _, rec := range records {
		outcome, err := e.Reconcile(ctx, rec)
		report.Record(outcome)
		if err == nil {
			continue
		}

		report.AddDefect(domain.NewDefect(
			rec.SourceDocument, 0, 0,
			domain.FieldLicenceNumber, rec.LicenceNumber,
			domain.DefectInsertFailed, err.Error()))

		if errors.Is(err, domain.ErrStoreUnavailable) {
			return fmt.Errorf("reconciliation pass aborted: %w", err)
		}
		log.Printf("reconcile.Engine: record %s failed, continuing: %v", rec.Key(), err)
	}
	return nil
}
