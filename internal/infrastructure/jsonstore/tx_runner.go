package jsonstore

import (
	"context"

	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// txSource es el clon exclusivo de una transacción. Dentro de la transacción
// no hace falta bloqueo: el TxRunner retiene el mutex del Store de punta a
// punta, así que la sección crítica cubre chequeo y mutación completos.
type txSource struct {
	d *database
}

func (t *txSource) view(fn func(d *database) error) error   { return fn(t.d) }
func (t *txSource) mutate(fn func(d *database) error) error { return fn(t.d) }

// TxRunner ejecuta callbacks con repositorios atados a un clon del documento.
// Si el callback falla, el clon se descarta y el snapshot publicado no cambia
// (ninguna mutación parcial sobrevive). Si termina bien, se persiste el clon
// y se publica como nuevo snapshot, todo bajo el mismo Lock: las operaciones
// concurrentes quedan serializadas, que es la disciplina que exige el Ledger.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) begin() (*txSource, error) {
	c, err := cloneDB(r.store.data)
	if err != nil {
		return nil, err
	}
	return &txSource{d: c}, nil
}

func (r *TxRunner) commit(tx *txSource) error {
	if err := r.store.persist(tx.d); err != nil {
		return err
	}
	r.store.data = tx.d
	return nil
}

// Run ejecuta fn con los repositorios que necesita el Ledger.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	levels repository.InventoryLocationRepository,
	audit repository.AuditLogRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.begin()
	if err != nil {
		return err
	}
	if err := fn(NewProductRepository(tx), NewInventoryLocationRepository(tx), NewAuditLogRepository(tx)); err != nil {
		return err
	}
	return r.commit(tx)
}

// RunBilling ejecuta fn con repositorios de inventario y facturación, para
// que la creación de factura y el descuento de stock compartan transacción.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	products repository.ProductRepository,
	levels repository.InventoryLocationRepository,
	audit repository.AuditLogRepository,
	invoices repository.InvoiceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.begin()
	if err != nil {
		return err
	}
	if err := fn(NewProductRepository(tx), NewInventoryLocationRepository(tx), NewAuditLogRepository(tx), NewInvoiceRepository(tx)); err != nil {
		return err
	}
	return r.commit(tx)
}
