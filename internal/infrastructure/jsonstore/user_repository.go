package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

// UserRepo usuarios sobre el documento JSON.
type UserRepo struct{ src dataSource }

// NewUserRepository construye el adaptador.
func NewUserRepository(src dataSource) *UserRepo { return &UserRepo{src: src} }

// Create persiste un usuario nuevo; rechaza username duplicado.
func (r *UserRepo) Create(u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return r.src.mutate(func(d *database) error {
		for _, existing := range d.Users {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		d.Users = append(d.Users, u)
		return nil
	})
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var found *entity.User
	err := r.src.view(func(d *database) error {
		for _, u := range d.Users {
			if u.ID == id {
				found = u
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	var found *entity.User
	err := r.src.view(func(d *database) error {
		for _, u := range d.Users {
			if u.Username == username {
				found = u
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *UserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	err := r.src.view(func(d *database) error {
		out = append(out, d.Users...)
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(u *entity.User) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Users {
			if existing.ID == u.ID {
				u.CreatedAt = existing.CreatedAt
				u.UpdatedAt = time.Now()
				d.Users[i] = u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

// SettingsRepo configuración del negocio sobre el documento JSON.
type SettingsRepo struct{ src dataSource }

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(src dataSource) *SettingsRepo { return &SettingsRepo{src: src} }

func (r *SettingsRepo) Get(name string) (*entity.Setting, error) {
	var found *entity.Setting
	err := r.src.view(func(d *database) error {
		for _, s := range d.Settings {
			if s.Name == name {
				found = s
				break
			}
		}
		return nil
	})
	return found, err
}

// GetValue devuelve el valor o def si el parámetro no existe.
func (r *SettingsRepo) GetValue(name, def string) string {
	s, err := r.Get(name)
	if err != nil || s == nil {
		return def
	}
	return s.Value
}

func (r *SettingsRepo) List() ([]*entity.Setting, error) {
	var out []*entity.Setting
	err := r.src.view(func(d *database) error {
		out = append(out, d.Settings...)
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Upsert(s *entity.Setting) error {
	return r.src.mutate(func(d *database) error {
		for _, existing := range d.Settings {
			if existing.Name == s.Name {
				existing.Value = s.Value
				if s.Description != "" {
					existing.Description = s.Description
				}
				return nil
			}
		}
		d.Settings = append(d.Settings, s)
		return nil
	})
}
