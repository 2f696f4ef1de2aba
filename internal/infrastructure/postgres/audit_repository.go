package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de la bitácora append-only sobre PostgreSQL.
// Sólo hay INSERT y SELECT: las entradas nunca se actualizan ni se borran.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append agrega una entrada. Completa ID y CreatedAt si vienen vacíos.
func (r *AuditLogRepo) Append(e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO audit_log (id, actor_id, action, product_id, location_id,
			from_location_id, to_location_id, invoice_id, delta, reason, details, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ActorID, e.Action, e.ProductID, e.LocationID,
		e.FromLocationID, e.ToLocationID, e.InvoiceID, e.Delta, e.Reason, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List consulta la bitácora, más reciente primero, con filtros opcionales.
func (r *AuditLogRepo) List(f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query := `
		SELECT id, actor_id, action, product_id, location_id, from_location_id,
			to_location_id, invoice_id, delta, reason, details, created_at
		FROM audit_log
		WHERE ($1 = '' OR actor_id = $1) AND ($2 = '' OR action = $2) AND ($3 = '' OR product_id = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, f.ActorID, f.Action, f.ProductID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, nullString(&e.ProductID), nullString(&e.LocationID),
			nullString(&e.FromLocationID), nullString(&e.ToLocationID), nullString(&e.InvoiceID),
			&e.Delta, &e.Reason, &e.Details, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
