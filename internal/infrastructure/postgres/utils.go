package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullString adapta un *string como destino de Scan que acepta NULL (queda "").
// Las columnas opcionales se guardan como NULL pero en las entidades viajan
// como string vacío.
func nullString(s *string) any { return (*nullableText)(s) }

type nullableText string

var _ pgtype.TextScanner = (*nullableText)(nil)

func (n *nullableText) ScanText(v pgtype.Text) error {
	if !v.Valid {
		*n = ""
		return nil
	}
	*n = nullableText(v.String)
	return nil
}
