package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"actavc/internal/sentinel"
	id "actavc/pkg/domain"
)

const uniqueViolation = "23505"

// PostgresIssuanceStore persists issuances in the vc_issuances table.
type PostgresIssuanceStore struct {
	db *sql.DB
}

func NewPostgresIssuanceStore(db *sql.DB) *PostgresIssuanceStore {
	return &PostgresIssuanceStore{db: db}
}

func (s *PostgresIssuanceStore) Save(ctx context.Context, issuance Issuance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vc_issuances (id, vc_id, tx_id, owner, issuer_did, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(issuance.ID), issuance.VCID, issuance.TxID, issuance.Owner, issuance.IssuerDID, issuance.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert issuance %s: %w", issuance.VCID, err)
	}
	return nil
}

func (s *PostgresIssuanceStore) ListByOwner(ctx context.Context, owner string) ([]Issuance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vc_id, tx_id, owner, issuer_did, created_at
		FROM vc_issuances
		WHERE owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	defer rows.Close()

	out := []Issuance{}
	for rows.Next() {
		var (
			iss   Issuance
			rowID uuid.UUID
		)
		if err := rows.Scan(&rowID, &iss.VCID, &iss.TxID, &iss.Owner, &iss.IssuerDID, &iss.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
		}
		iss.ID = id.IssuanceID(rowID)
		out = append(out, iss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issuances: %w", err)
	}
	return out, nil
}
