package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// LocationRepository puerto de persistencia de ubicaciones físicas.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List() ([]*entity.Location, error)
	Update(l *entity.Location) error
	Delete(id string) error
}
