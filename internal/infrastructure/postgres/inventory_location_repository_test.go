package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
)

// execRecorder captura los argumentos de cada Exec sin tocar la base. Sólo
// sirve para verificar qué llega al INSERT; Query/QueryRow no se usan aquí.
type execRecorder struct {
	calls [][]any
}

func (f *execRecorder) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, args)
	return pgconn.CommandTag{}, nil
}

func (f *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (f *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }

// El Ledger construye las filas del desglose sólo con el par y la cantidad.
// Upsert debe completar id y timestamps, o el segundo par insertado chocaría
// contra la clave primaria con id vacío.
func TestUpsert_CompletaIDYTimestamps(t *testing.T) {
	rec := &execRecorder{}
	repo := NewInventoryLocationRepository(rec)

	err := repo.Upsert(&entity.InventoryLocation{ProductID: "p1", LocationID: "a", Quantity: 10})
	require.NoError(t, err)
	err = repo.Upsert(&entity.InventoryLocation{ProductID: "p1", LocationID: "b", Quantity: 4})
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)

	idA, ok := rec.calls[0][0].(string)
	require.True(t, ok)
	idB := rec.calls[1][0].(string)

	_, err = uuid.Parse(idA)
	assert.NoError(t, err, "id generado debe ser un uuid")
	assert.NotEqual(t, idA, idB, "cada par recibe su propio id")

	createdAt, ok := rec.calls[0][4].(time.Time)
	require.True(t, ok)
	assert.False(t, createdAt.IsZero())
	updatedAt := rec.calls[0][5].(time.Time)
	assert.False(t, updatedAt.IsZero())
}

// Una fila que ya trae id (releída de la base) lo conserva y sólo renueva
// updated_at.
func TestUpsert_ConservaIDExistente(t *testing.T) {
	rec := &execRecorder{}
	repo := NewInventoryLocationRepository(rec)

	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	err := repo.Upsert(&entity.InventoryLocation{
		ID:         "fila-existente",
		ProductID:  "p1",
		LocationID: "a",
		Quantity:   7,
		CreatedAt:  created,
	})
	require.NoError(t, err)
	require.Len(t, rec.calls, 1)

	assert.Equal(t, "fila-existente", rec.calls[0][0])
	assert.Equal(t, created, rec.calls[0][4])
	updatedAt := rec.calls[0][5].(time.Time)
	assert.True(t, updatedAt.After(created))
}
