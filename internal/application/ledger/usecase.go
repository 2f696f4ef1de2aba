package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// Service es la única autoridad sobre las cantidades de stock. Garantiza que
// ninguna cantidad quede negativa (salvo el clamp documentado de Deduct), que
// el agregado y el desglose por ubicación se muevan juntos en la misma
// transacción, y que cada mutación exitosa deje exactamente una entrada en la
// bitácora. El actor se pasa explícito en cada operación; no hay sesión
// ambiente.
type Service struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	locations repository.LocationRepository
	levels    repository.InventoryLocationRepository
}

// NewService construye el Ledger.
func NewService(
	txRunner TxRunner,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	levels repository.InventoryLocationRepository,
) *Service {
	return &Service{txRunner: txRunner, products: products, locations: locations, levels: levels}
}

// ReceiveInput entrada de mercancía (compra, devolución).
type ReceiveInput struct {
	ProductID  string
	Quantity   int64
	LocationID string // opcional
	SupplierID string // opcional, sólo para la bitácora
	BatchRef   string // opcional
	Notes      string
}

// AdjustInput corrección manual con delta con signo.
type AdjustInput struct {
	ProductID  string
	Delta      int64
	Reason     string
	LocationID string // opcional
	Notes      string
}

// TransferInput traslado entre dos ubicaciones; conserva el total.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Reason         string
}

// DeductInput descuento ligado a una factura.
type DeductInput struct {
	ProductID string
	Quantity  int64
	InvoiceID string
	Reason    string // por defecto "sale"
}

// Receive incrementa el stock del producto y, si se indica ubicación, la fila
// correspondiente del desglose (merge-or-create). No hay tope superior:
// MaxStock es informativo y nunca se rechaza una recepción por excederlo.
func (s *Service) Receive(ctx context.Context, actorID string, in ReceiveInput) (int64, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if err := s.checkRefs(in.ProductID, in.LocationID); err != nil {
		return 0, err
	}

	now := time.Now()
	var newQty int64
	err := s.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
	) error {
		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		prior := product.Quantity
		newQty = prior + in.Quantity
		if err := products.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		if err := applyIncrease(levels, product, in.LocationID, in.Quantity, prior); err != nil {
			return err
		}
		return audit.Append(&entity.AuditEntry{
			ActorID:    actorID,
			Action:     entity.ActionStockReceived,
			ProductID:  product.ID,
			LocationID: in.LocationID,
			Delta:      in.Quantity,
			Reason:     "receive",
			Details:    receiveDetails(product.Name, in, newQty),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// Adjust aplica un delta con signo al stock del producto. Falla cerrado con
// StockError si el resultado fuera negativo: ni el agregado, ni el desglose,
// ni la bitácora se tocan en ese caso.
func (s *Service) Adjust(ctx context.Context, actorID string, in AdjustInput) (int64, error) {
	if in.ProductID == "" || in.Delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	if err := s.checkRefs(in.ProductID, in.LocationID); err != nil {
		return 0, err
	}

	now := time.Now()
	var newQty int64
	err := s.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
	) error {
		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		prior := product.Quantity
		newQty = prior + in.Delta
		if newQty < 0 {
			return &domain.StockError{
				ProductID: product.ID,
				Requested: -in.Delta,
				Available: prior,
			}
		}
		switch {
		case in.LocationID != "" && in.Delta < 0:
			row, err := levels.GetForUpdate(product.ID, in.LocationID)
			if err != nil {
				return err
			}
			var rowQty int64
			if row != nil {
				rowQty = row.Quantity
			}
			if rowQty+in.Delta < 0 {
				return &domain.StockError{
					ProductID:  product.ID,
					LocationID: in.LocationID,
					Requested:  -in.Delta,
					Available:  rowQty,
				}
			}
			if err := levels.Upsert(&entity.InventoryLocation{
				ProductID:  product.ID,
				LocationID: in.LocationID,
				Quantity:   rowQty + in.Delta,
			}); err != nil {
				return err
			}
		case in.Delta > 0:
			if err := applyIncrease(levels, product, in.LocationID, in.Delta, prior); err != nil {
				return err
			}
		default:
			if err := drain(levels, product, -in.Delta); err != nil {
				return err
			}
		}
		if err := products.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		return audit.Append(&entity.AuditEntry{
			ActorID:    actorID,
			Action:     entity.ActionStockAdjusted,
			ProductID:  product.ID,
			LocationID: in.LocationID,
			Delta:      in.Delta,
			Reason:     in.Reason,
			Details:    fmt.Sprintf("Ajuste de %s en %+d. Motivo: %s. Nuevo stock: %d", product.Name, in.Delta, in.Reason, newQty),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// Transfer mueve unidades entre dos ubicaciones. El chequeo de suficiencia es
// sobre la fila de origen, no sobre el agregado: el agregado puede superar lo
// que físicamente hay en la ubicación de origen. El total del producto no
// cambia, así que el agregado no se toca.
func (s *Service) Transfer(ctx context.Context, actorID string, in TransferInput) (fromQty, toQty int64, err error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.FromLocationID == "" || in.ToLocationID == "" {
		return 0, 0, domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return 0, 0, domain.ErrInvalidInput
	}
	if err := s.checkRefs(in.ProductID, in.FromLocationID); err != nil {
		return 0, 0, err
	}
	if loc, err := s.locations.GetByID(in.ToLocationID); err != nil {
		return 0, 0, err
	} else if loc == nil {
		return 0, 0, domain.ErrNotFound
	}

	now := time.Now()
	err = s.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
	) error {
		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		origin, err := levels.GetForUpdate(product.ID, in.FromLocationID)
		if err != nil {
			return err
		}
		var originQty int64
		if origin != nil {
			originQty = origin.Quantity
		}
		if originQty < in.Quantity {
			return &domain.StockError{
				ProductID:  product.ID,
				LocationID: in.FromLocationID,
				Requested:  in.Quantity,
				Available:  originQty,
			}
		}
		dest, err := levels.GetForUpdate(product.ID, in.ToLocationID)
		if err != nil {
			return err
		}
		var destQty int64
		if dest != nil {
			destQty = dest.Quantity
		}
		fromQty = originQty - in.Quantity
		toQty = destQty + in.Quantity
		if err := levels.Upsert(&entity.InventoryLocation{
			ProductID:  product.ID,
			LocationID: in.FromLocationID,
			Quantity:   fromQty,
		}); err != nil {
			return err
		}
		if err := levels.Upsert(&entity.InventoryLocation{
			ProductID:  product.ID,
			LocationID: in.ToLocationID,
			Quantity:   toQty,
		}); err != nil {
			return err
		}
		return audit.Append(&entity.AuditEntry{
			ActorID:        actorID,
			Action:         entity.ActionStockTransferred,
			ProductID:      product.ID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Delta:          in.Quantity,
			Reason:         in.Reason,
			Details: fmt.Sprintf("Traslado de %d unidades de %s de %s a %s. Motivo: %s",
				in.Quantity, product.Name, in.FromLocationID, in.ToLocationID, in.Reason),
			CreatedAt: now,
		})
	})
	if err != nil {
		return 0, 0, err
	}
	return fromQty, toQty, nil
}

// Deduct descuenta stock por una venta. Es deliberadamente laxo: si se pide
// más de lo disponible, descuenta hasta cero en lugar de fallar, para que una
// lectura desactualizada de stock nunca bloquee la emisión de la factura. El
// sobre-vendido se concilia después, fuera del Ledger.
func (s *Service) Deduct(ctx context.Context, actorID string, in DeductInput) (int64, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.InvoiceID == "" {
		return 0, domain.ErrInvalidInput
	}
	if err := s.checkRefs(in.ProductID, ""); err != nil {
		return 0, err
	}

	var newQty int64
	err := s.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
	) error {
		var err error
		newQty, err = s.DeductInTx(products, levels, audit, actorID, in, time.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// DeductInTx ejecuta el descuento con los repositorios del caller (misma
// transacción). Lo usa el orquestador de facturación para que la factura y
// sus descuentos sean una sola unidad atómica.
func (s *Service) DeductInTx(
	products repository.ProductRepository,
	levels repository.InventoryLocationRepository,
	audit repository.AuditLogRepository,
	actorID string,
	in DeductInput,
	now time.Time,
) (int64, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.InvoiceID == "" {
		return 0, domain.ErrInvalidInput
	}
	product, err := products.GetForUpdate(in.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	newQty := product.Quantity - in.Quantity
	if newQty < 0 {
		newQty = 0 // clamp: la venta no se bloquea por stock insuficiente
	}
	deducted := product.Quantity - newQty
	if err := products.UpdateQuantity(product.ID, newQty); err != nil {
		return 0, err
	}
	if err := drain(levels, product, deducted); err != nil {
		return 0, err
	}
	reason := in.Reason
	if reason == "" {
		reason = "sale"
	}
	err = audit.Append(&entity.AuditEntry{
		ActorID:   actorID,
		Action:    entity.ActionStockDeducted,
		ProductID: product.ID,
		InvoiceID: in.InvoiceID,
		Delta:     -deducted,
		Reason:    reason,
		Details: fmt.Sprintf("Descuento de %d unidades de %s por factura %s. Nuevo stock: %d",
			in.Quantity, product.Name, in.InvoiceID, newQty),
		CreatedAt: now,
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// TotalForProduct devuelve el total del producto: la suma del desglose cuando
// el producto está rastreado por ubicación, o el agregado cuando no lo está.
// Lectura pura, sin efectos.
func (s *Service) TotalForProduct(ctx context.Context, productID string) (int64, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	rows, err := s.levels.ListByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return product.Quantity, nil
	}
	var total int64
	for _, row := range rows {
		total += row.Quantity
	}
	return total, nil
}

// Locations devuelve el desglose filtrado por producto y/o ubicación.
func (s *Service) Locations(ctx context.Context, productID, locationID string) ([]*entity.InventoryLocation, error) {
	return s.levels.List(productID, locationID)
}

// checkRefs valida contra el catálogo que el producto (y la ubicación, si se
// indicó) existan. El Ledger no duplica los guards de borrado del catálogo.
func (s *Service) checkRefs(productID, locationID string) error {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if locationID != "" {
		loc, err := s.locations.GetByID(locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// applyIncrease suma unidades al desglose. Con ubicación explícita la fila
// del par toma el delta; sin ubicación y con desglose existente, lo toma la
// fila por defecto (el puntero legado del producto o, en su defecto, la fila
// más grande), para que sum(desglose) siga igual al agregado. Un producto sin
// desglose no se empieza a rastrear implícitamente; pero cuando una operación
// con ubicación crea la primera fila, el agregado previo no rastreado (prior)
// se atribuye a esa fila, para que el desglose nazca cuadrado con el agregado.
func applyIncrease(levels repository.InventoryLocationRepository, product *entity.Product, locationID string, qty, prior int64) error {
	rows, err := levels.ListByProduct(product.ID)
	if err != nil {
		return err
	}
	if locationID == "" {
		if len(rows) == 0 {
			return nil
		}
		locationID = defaultRow(rows, product).LocationID
	}
	row, err := levels.GetForUpdate(product.ID, locationID)
	if err != nil {
		return err
	}
	var current int64
	if row != nil {
		current = row.Quantity
	}
	if len(rows) == 0 {
		current += prior
	}
	return levels.Upsert(&entity.InventoryLocation{
		ProductID:  product.ID,
		LocationID: locationID,
		Quantity:   current + qty,
	})
}

// drain resta unidades del desglose, vaciando primero las filas con más
// stock. Cada fila queda en cero como mínimo; si el desglose traía menos que
// amount (deriva heredada), se vacía lo que haya.
func drain(levels repository.InventoryLocationRepository, product *entity.Product, amount int64) error {
	if amount <= 0 {
		return nil
	}
	rows, err := levels.ListByProduct(product.ID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })
	for _, row := range rows {
		if amount == 0 {
			break
		}
		take := row.Quantity
		if take > amount {
			take = amount
		}
		if take == 0 {
			continue
		}
		if err := levels.Upsert(&entity.InventoryLocation{
			ProductID:  row.ProductID,
			LocationID: row.LocationID,
			Quantity:   row.Quantity - take,
		}); err != nil {
			return err
		}
		amount -= take
	}
	return nil
}

// defaultRow elige la fila que absorbe deltas sin ubicación explícita.
func defaultRow(rows []*entity.InventoryLocation, product *entity.Product) *entity.InventoryLocation {
	if product.LocationID != "" {
		for _, row := range rows {
			if row.LocationID == product.LocationID {
				return row
			}
		}
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Quantity > best.Quantity {
			best = row
		}
	}
	return best
}

func receiveDetails(productName string, in ReceiveInput, newQty int64) string {
	msg := fmt.Sprintf("Recepción de %d unidades de %s. Nuevo stock: %d", in.Quantity, productName, newQty)
	if in.SupplierID != "" {
		msg += fmt.Sprintf(". Proveedor: %s", in.SupplierID)
	}
	if in.BatchRef != "" {
		msg += fmt.Sprintf(". Lote: %s", in.BatchRef)
	}
	if in.Notes != "" {
		msg += fmt.Sprintf(". Notas: %s", in.Notes)
	}
	return msg
}
