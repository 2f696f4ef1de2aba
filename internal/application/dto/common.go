package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP. Para errores de stock incluye el
// detalle estructurado (producto, ubicación, solicitado vs disponible).
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  *StockDetail `json:"detail,omitempty"`
}

// StockDetail detalle de una violación de stock para que la UI arme un
// mensaje preciso.
type StockDetail struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id,omitempty"`
	Requested  int64  `json:"requested"`
	Available  int64  `json:"available"`
}
