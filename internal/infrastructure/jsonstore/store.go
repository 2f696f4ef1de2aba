package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
)

// database es el documento completo que se serializa a disco. Cada colección
// es un slice tipado; la búsqueda es por barrido lineal, suficiente para el
// volumen de un negocio pequeño.
type database struct {
	Users              []*entity.User              `json:"users"`
	Products           []*entity.Product           `json:"inventory"`
	InventoryLocations []*entity.InventoryLocation `json:"inventory_locations"`
	Locations          []*entity.Location          `json:"locations"`
	Categories         []*entity.Category          `json:"categories"`
	Subcategories      []*entity.Subcategory       `json:"subcategories"`
	Brands             []*entity.Brand             `json:"brands"`
	Suppliers          []*entity.Supplier          `json:"suppliers"`
	Customers          []*entity.Customer          `json:"customers"`
	TaxRates           []*entity.TaxRate           `json:"tax_rates"`
	Invoices           []*entity.Invoice           `json:"invoices"`
	InvoiceItems       []*entity.InvoiceItem       `json:"invoice_items"`
	Payments           []*entity.Payment           `json:"payments"`
	AuditLog           []*entity.AuditEntry        `json:"audit_log"`
	Settings           []*entity.Setting           `json:"system_settings"`
}

// Store es el almacén de registros respaldado por un único archivo JSON.
// Las lecturas toman RLock sobre el snapshot vigente; las escrituras clonan,
// mutan el clon, persisten y recién entonces publican el clon. El snapshot
// publicado nunca se muta en sitio, así los punteros entregados a los
// lectores siguen siendo válidos aunque otra escritura lo reemplace.
type Store struct {
	path string
	mu   sync.RWMutex
	data *database
}

// Open carga el archivo si existe o inicializa un documento vacío con la
// configuración por defecto y lo persiste.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var d database
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("jsonstore: archivo corrupto %s: %w", path, err)
		}
		s.data = &d
	case os.IsNotExist(err):
		s.data = &database{Settings: defaultSettings()}
		if err := s.persist(s.data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("jsonstore: leer %s: %w", path, err)
	}
	return s, nil
}

// Path devuelve la ruta del archivo de datos.
func (s *Store) Path() string { return s.path }

// view ejecuta fn con acceso de sólo lectura al snapshot vigente.
func (s *Store) view(fn func(d *database) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// mutate clona el snapshot, aplica fn sobre el clon y, si no hay error,
// persiste y publica el clon. Un fallo deja el snapshot anterior intacto.
func (s *Store) mutate(fn func(d *database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := cloneDB(s.data)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.persist(c); err != nil {
		return err
	}
	s.data = c
	return nil
}

// persist escribe el documento en un archivo temporal del mismo directorio y
// lo renombra sobre el definitivo, para no dejar nunca un JSON a medias.
func (s *Store) persist(d *database) error {
	raw, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("jsonstore: serializar: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".almacen-*.json")
	if err != nil {
		return fmt.Errorf("jsonstore: archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: escribir %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: cerrar %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: renombrar sobre %s: %w", s.path, err)
	}
	return nil
}

// cloneDB copia profunda vía JSON; el mismo códec que usa la persistencia.
func cloneDB(d *database) (*database, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("jsonstore: clonar: %w", err)
	}
	var c database
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("jsonstore: clonar: %w", err)
	}
	return &c, nil
}

func defaultSettings() []*entity.Setting {
	return []*entity.Setting{
		{Name: entity.SettingCompanyName, Value: "Mi Almacén", Description: "Nombre del negocio"},
		{Name: entity.SettingInvoicePrefix, Value: "INV", Description: "Prefijo de numeración de facturas"},
		{Name: entity.SettingCurrencyCode, Value: "USD", Description: "Código de moneda"},
		{Name: entity.SettingLowStockThreshold, Value: "5", Description: "Umbral de stock bajo por defecto"},
	}
}

// dataSource abstrae de dónde leen y escriben los repositorios: el Store
// (fuera de transacción) o el clon exclusivo de una transacción en curso.
type dataSource interface {
	view(fn func(d *database) error) error
	mutate(fn func(d *database) error) error
}

var _ dataSource = (*Store)(nil)
