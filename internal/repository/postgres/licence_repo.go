package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"licencewatch/internal/domain"
	"licencewatch/internal/port"
)

type licenceStore struct {
	db *sqlx.DB
}

// NewLicenceStore creates a PostgreSQL-backed LicenceStore.
func NewLicenceStore(db *sqlx.DB) port.LicenceStore {
	return &licenceStore{db: db}
}

// WithinTx runs fn inside one transaction. fn returning an error rolls the
// transaction back; nil commits. Failing to even begin the transaction is a
// connection-level problem and surfaces as domain.ErrStoreUnavailable.
func (s *licenceStore) WithinTx(ctx context.Context, fn func(tx port.LicenceTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %v: %w", err, domain.ErrStoreUnavailable)
	}

	if err := fn(&licenceTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *licenceStore) ListRecent(ctx context.Context, limit int) ([]domain.LicenceRecord, error) {
	var recs []domain.LicenceRecord
	err := s.db.SelectContext(ctx, &recs,
		"SELECT * FROM licences ORDER BY created_at DESC, id LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("licenceStore.ListRecent: %w", err)
	}
	return recs, nil
}

type licenceTx struct {
	tx *sqlx.Tx
}

func (t *licenceTx) FindByKey(ctx context.Context, key domain.DedupKey) (*domain.LicenceRecord, error) {
	var rec domain.LicenceRecord
	err := t.tx.GetContext(ctx, &rec, `
		SELECT * FROM licences
		WHERE licence_number = $1
		  AND licensed_name = $2
		  AND active_ingredient = $3
		  AND quantity = $4
		  AND grant_date IS NOT DISTINCT FROM $5`,
		key.LicenceNumber, key.LicensedName, key.ActiveIngredient, key.Quantity, key.GrantDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLicenceNotFound
		}
		return nil, fmt.Errorf("licenceTx.FindByKey: %w", err)
	}
	return &rec, nil
}

func (t *licenceTx) Insert(ctx context.Context, rec *domain.LicenceRecord) error {
	query := `INSERT INTO licences (
		id, licence_number, grant_date, holder_name, licensed_name,
		active_ingredient, quantity, units, legal_status,
		work_type, auth_status, territory, variant, source_document, created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14, $15
	)`

	_, err := t.tx.ExecContext(ctx, query,
		rec.ID, rec.LicenceNumber, rec.GrantDate, rec.HolderName, rec.LicensedName,
		rec.ActiveIngredient, rec.Quantity, rec.Units, rec.LegalStatus,
		rec.WorkType, rec.AuthStatus, rec.Territory, rec.Variant, rec.SourceDocument, rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateLicence
		}
		return fmt.Errorf("licenceTx.Insert: %w", err)
	}
	return nil
}
