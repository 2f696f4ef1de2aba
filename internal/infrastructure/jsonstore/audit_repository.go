package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only sobre el documento JSON.
type AuditLogRepo struct {
	src dataSource
}

// NewAuditLogRepository construye el adaptador. Pasar el Store o una tx.
func NewAuditLogRepository(src dataSource) *AuditLogRepo {
	return &AuditLogRepo{src: src}
}

// Append agrega una entrada. Las entradas existentes jamás se tocan.
func (r *AuditLogRepo) Append(e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return r.src.mutate(func(d *database) error {
		d.AuditLog = append(d.AuditLog, e)
		return nil
	})
}

// List devuelve entradas de la más reciente a la más antigua, filtradas.
func (r *AuditLogRepo) List(f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	var matched []*entity.AuditEntry
	err := r.src.view(func(d *database) error {
		for i := len(d.AuditLog) - 1; i >= 0; i-- {
			e := d.AuditLog[i]
			if f.ActorID != "" && e.ActorID != f.ActorID {
				continue
			}
			if f.Action != "" && e.Action != f.Action {
				continue
			}
			if f.ProductID != "" && e.ProductID != f.ProductID {
				continue
			}
			matched = append(matched, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(matched, f.Limit, f.Offset), nil
}
