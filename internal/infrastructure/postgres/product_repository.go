package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, barcode, category_id, subcategory_id, brand_id,
	supplier_id, location_id, price, cost, quantity, min_stock, max_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con cantidad cero.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Barcode, p.CategoryID, p.SubcategoryID, p.BrandID,
		p.SupplierID, p.LocationID, p.Price, p.Cost, p.Quantity, p.MinStock, p.MaxStock,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
// Debe invocarse con un Querier transaccional.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(scanDest(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación, por fecha de creación descendente.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(scanDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los datos del producto. No toca quantity ni created_at:
// la cantidad sólo la escribe UpdateQuantity.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, barcode = NULLIF($4, ''),
			category_id = NULLIF($5, ''), subcategory_id = NULLIF($6, ''), brand_id = NULLIF($7, ''),
			supplier_id = NULLIF($8, ''), location_id = NULLIF($9, ''),
			price = $10, cost = $11, min_stock = $12, max_stock = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Barcode, p.CategoryID, p.SubcategoryID, p.BrandID,
		p.SupplierID, p.LocationID, p.Price, p.Cost, p.MinStock, p.MaxStock, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija el agregado de stock. Reservado al Ledger.
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos en una categoría (guardas de borrado).
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID)
}

// CountByBrand cuenta productos de una marca.
func (r *ProductRepo) CountByBrand(brandID string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM products WHERE brand_id = $1`, brandID)
}

// CountBySupplier cuenta productos de un proveedor.
func (r *ProductRepo) CountBySupplier(supplierID string) (int, error) {
	return r.count(`SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID)
}

func (r *ProductRepo) count(query, arg string) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// scanDest destinos de Scan en el orden de productColumns. Los opcionales se
// leen como NULL y quedan como string vacío en la entidad.
func scanDest(p *entity.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, nullString(&p.Barcode), nullString(&p.CategoryID),
		nullString(&p.SubcategoryID), nullString(&p.BrandID), nullString(&p.SupplierID),
		nullString(&p.LocationID), &p.Price, &p.Cost, &p.Quantity, &p.MinStock, &p.MaxStock,
		&p.CreatedAt, &p.UpdatedAt,
	}
}
