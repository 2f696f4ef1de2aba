package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones físicas.
type LocationUseCase struct {
	locations repository.LocationRepository
	levels    repository.InventoryLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locations repository.LocationRepository, levels repository.InventoryLocationRepository) *LocationUseCase {
	return &LocationUseCase{locations: locations, levels: levels}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(loc), nil
}

// List lista todas las ubicaciones.
func (uc *LocationUseCase) List() ([]dto.LocationResponse, error) {
	list, err := uc.locations.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

// Update actualiza nombre, dirección y notas.
func (uc *LocationUseCase) Update(id string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	loc.Name = in.Name
	loc.Address = in.Address
	loc.Notes = in.Notes
	loc.UpdatedAt = time.Now()
	if err := uc.locations.Update(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Delete elimina una ubicación. Se rechaza con ErrConflict si el desglose de
// inventario aún tiene filas en ella, aunque estén en cero: primero hay que
// trasladar o ajustar el stock.
func (uc *LocationUseCase) Delete(id string) error {
	loc, err := uc.locations.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	rows, err := uc.levels.CountByLocation(id)
	if err != nil {
		return err
	}
	if rows > 0 {
		return domain.ErrConflict
	}
	return uc.locations.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
