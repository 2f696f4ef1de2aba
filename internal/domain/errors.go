package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockError detalla una violación de stock: qué producto, en qué ubicación,
// cuánto se pidió y cuánto había. Envuelve ErrInsufficientStock para que
// errors.Is siga funcionando en los handlers.
type StockError struct {
	ProductID  string
	LocationID string // vacío si el chequeo fue sobre el agregado
	Requested  int64
	Available  int64
}

func (e *StockError) Error() string {
	if e.LocationID != "" {
		return fmt.Sprintf("stock insuficiente: producto %s en ubicación %s (solicitado %d, disponible %d)",
			e.ProductID, e.LocationID, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente: producto %s (solicitado %d, disponible %d)",
		e.ProductID, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockError) Unwrap() error { return ErrInsufficientStock }
