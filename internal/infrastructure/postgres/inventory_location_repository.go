package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.InventoryLocationRepository = (*InventoryLocationRepo)(nil)

const levelColumns = `id, product_id, location_id, quantity, created_at, updated_at`

// InventoryLocationRepo implementación del desglose de stock por ubicación
// sobre PostgreSQL. El par (product_id, location_id) tiene constraint único.
type InventoryLocationRepo struct {
	q Querier
}

// NewInventoryLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLocationRepository(q Querier) *InventoryLocationRepo {
	return &InventoryLocationRepo{q: q}
}

// Get devuelve la fila del par, o nil si no existe.
func (r *InventoryLocationRepo) Get(productID, locationID string) (*entity.InventoryLocation, error) {
	query := `SELECT ` + levelColumns + ` FROM inventory_locations WHERE product_id = $1 AND location_id = $2`
	return r.getRow(query, productID, locationID)
}

// GetForUpdate es Get con bloqueo de fila (SELECT FOR UPDATE). Debe invocarse
// con un Querier transaccional.
func (r *InventoryLocationRepo) GetForUpdate(productID, locationID string) (*entity.InventoryLocation, error) {
	query := `SELECT ` + levelColumns + ` FROM inventory_locations WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	return r.getRow(query, productID, locationID)
}

func (r *InventoryLocationRepo) getRow(query string, args ...any) (*entity.InventoryLocation, error) {
	var l entity.InventoryLocation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.ProductID, &l.LocationID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory location: %w", err)
	}
	return &l, nil
}

// List filtra por producto y/o ubicación; con ambos vacíos devuelve todo.
func (r *InventoryLocationRepo) List(productID, locationID string) ([]*entity.InventoryLocation, error) {
	query := `
		SELECT ` + levelColumns + ` FROM inventory_locations
		WHERE ($1 = '' OR product_id = $1) AND ($2 = '' OR location_id = $2)
		ORDER BY product_id, location_id`
	rows, err := r.q.Query(context.Background(), query, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list inventory locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLocation
	for rows.Next() {
		var l entity.InventoryLocation
		if err := rows.Scan(&l.ID, &l.ProductID, &l.LocationID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByProduct devuelve el desglose completo de un producto.
func (r *InventoryLocationRepo) ListByProduct(productID string) ([]*entity.InventoryLocation, error) {
	return r.List(productID, "")
}

// Upsert inserta o actualiza la cantidad del par (producto, ubicación).
// El ON CONFLICT garantiza a lo sumo una fila por par. Completa ID y
// timestamps si vienen vacíos: el Ledger construye las filas sólo con el par
// y la cantidad.
func (r *InventoryLocationRepo) Upsert(row *entity.InventoryLocation) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	now := time.Now()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	query := `
		INSERT INTO inventory_locations (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.ProductID, row.LocationID, row.Quantity, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory location: %w", err)
	}
	return nil
}

// CountByLocation cuenta filas del desglose en una ubicación (guarda de borrado).
func (r *InventoryLocationRepo) CountByLocation(locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_locations WHERE location_id = $1`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory locations: %w", err)
	}
	return n, nil
}

// CountByProduct cuenta filas del desglose de un producto.
func (r *InventoryLocationRepo) CountByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_locations WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory locations: %w", err)
	}
	return n, nil
}
