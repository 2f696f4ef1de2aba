package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// AuditFilter filtros de consulta de la bitácora. Campos vacíos no filtran.
type AuditFilter struct {
	ActorID   string
	Action    string
	ProductID string
	Limit     int
	Offset    int
}

// AuditLogRepository puerto de la bitácora append-only. No hay Update ni
// Delete: las entradas son inmutables una vez escritas.
type AuditLogRepository interface {
	Append(e *entity.AuditEntry) error
	List(f AuditFilter) ([]*entity.AuditEntry, error)
}
