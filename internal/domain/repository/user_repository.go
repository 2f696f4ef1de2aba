package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// UserRepository puerto de usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(u *entity.User) error
}

// SettingsRepository puerto de configuración del negocio.
type SettingsRepository interface {
	Get(name string) (*entity.Setting, error)
	GetValue(name, def string) string
	List() ([]*entity.Setting, error)
	Upsert(s *entity.Setting) error
}
