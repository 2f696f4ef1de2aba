package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración del negocio sobre PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(name string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.q.QueryRow(context.Background(),
		`SELECT setting_name, setting_value, description FROM system_settings WHERE setting_name = $1`, name,
	).Scan(&s.Name, &s.Value, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// GetValue devuelve el valor del parámetro, o def si no existe o falla la
// lectura. Pensado para valores con default razonable.
func (r *SettingsRepo) GetValue(name, def string) string {
	s, err := r.Get(name)
	if err != nil || s == nil || s.Value == "" {
		return def
	}
	return s.Value
}

func (r *SettingsRepo) List() ([]*entity.Setting, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT setting_name, setting_value, description FROM system_settings ORDER BY setting_name`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.Name, &s.Value, &s.Description); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SettingsRepo) Upsert(s *entity.Setting) error {
	query := `
		INSERT INTO system_settings (setting_name, setting_value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (setting_name)
		DO UPDATE SET setting_value = EXCLUDED.setting_value`
	_, err := r.q.Exec(context.Background(), query, s.Name, s.Value, s.Description)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
