package reports

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// pageSize para recorrer el catálogo completo al armar el tablero.
const pageSize = 500

// UseCase reportes de sólo lectura: tablero, bitácora y configuración.
type UseCase struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	audit     repository.AuditLogRepository
	settings  repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	audit repository.AuditLogRepository,
	settings repository.SettingsRepository,
) *UseCase {
	return &UseCase{products: products, locations: locations, audit: audit, settings: settings}
}

// Dashboard arma el resumen: conteos, stock bajo y valorización del
// inventario (cantidad por costo, en decimal).
func (uc *UseCase) Dashboard() (*dto.DashboardResponse, error) {
	threshold := uc.lowStockThreshold()

	locations, err := uc.locations.List()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalLocations: int64(len(locations)),
		LowStockItems:  []dto.LowStockItem{},
	}
	value := decimal.Zero

	for offset := 0; ; offset += pageSize {
		page, err := uc.products.List(pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			resp.TotalProducts++
			value = value.Add(p.Cost.Mul(decimal.NewFromInt(p.Quantity)))
			if p.Quantity == 0 {
				resp.OutOfStock++
			}
			min := p.MinStock
			if min <= 0 {
				min = threshold
			}
			if p.Quantity <= min {
				resp.LowStockCount++
				resp.LowStockItems = append(resp.LowStockItems, dto.LowStockItem{
					ProductID: p.ID,
					Name:      p.Name,
					Barcode:   p.Barcode,
					Quantity:  p.Quantity,
					MinStock:  min,
				})
			}
		}
		if len(page) < pageSize {
			break
		}
	}
	resp.InventoryValue = value.Round(2).StringFixed(2)
	return resp, nil
}

// AuditLog lista la bitácora, más reciente primero, con filtros opcionales.
func (uc *UseCase) AuditLog(f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return uc.audit.List(f)
}

// Settings lista la configuración del negocio.
func (uc *UseCase) Settings() ([]dto.SettingResponse, error) {
	list, err := uc.settings.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SettingResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SettingResponse{Name: s.Name, Value: s.Value})
	}
	return items, nil
}

// UpdateSetting actualiza un parámetro en caliente. El umbral de stock bajo
// debe ser un entero no negativo.
func (uc *UseCase) UpdateSetting(name, value string) (*dto.SettingResponse, error) {
	if name == "" || value == "" {
		return nil, domain.ErrInvalidInput
	}
	if name == entity.SettingLowStockThreshold {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	s := &entity.Setting{Name: name, Value: value}
	if err := uc.settings.Upsert(s); err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Name: s.Name, Value: s.Value}, nil
}

func (uc *UseCase) lowStockThreshold() int64 {
	raw := uc.settings.GetValue(entity.SettingLowStockThreshold, "5")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 5
	}
	return n
}
