package entity

// Nombres de configuración del sistema usados por la aplicación.
const (
	SettingCompanyName       = "company_name"
	SettingInvoicePrefix     = "invoice_prefix"
	SettingCurrencyCode      = "currency_code"
	SettingLowStockThreshold = "low_stock_threshold"
)

// Setting parámetro de configuración del negocio, editable en caliente.
type Setting struct {
	Name        string `json:"setting_name"`
	Value       string `json:"setting_value"`
	Description string `json:"description,omitempty"`
}
