package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yourusername/presupuestos-bot/internal/domain/constants"
)

// Config configuración de la aplicación
type Config struct {
	TelegramToken string

	// Catálogo: Google Sheets (SpreadsheetID + service account) o un .xlsx
	// local; con ambos configurados gana la planilla online
	SpreadsheetID    string
	GoogleSAJSONPath string
	CatalogXLSXPath  string

	// Extractor IA opcional
	GeminiAPIKey string

	// Logo PNG opcional para el encabezado de los PDFs
	LogoPath string

	// Encabezado de la empresa
	EmpresaNombre    string
	EmpresaSub       string
	EmpresaCUIT      string
	EmpresaDireccion string
	EmpresaTelefono  string
	EmpresaEmail     string
}

// Load carga la configuración desde el entorno (.env si existe)
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		SpreadsheetID:    strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		GoogleSAJSONPath: strings.TrimSpace(os.Getenv("GOOGLE_SA_JSON_PATH")),
		CatalogXLSXPath:  strings.TrimSpace(os.Getenv("CATALOG_XLSX_PATH")),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		LogoPath:         getEnv("LOGO_PATH", "./assets/logo.png"),
		EmpresaNombre:    getEnv("EMPRESA_NOMBRE", constants.EmpresaNombre),
		EmpresaSub:       getEnv("EMPRESA_SUB", constants.EmpresaSub),
		EmpresaCUIT:      getEnv("EMPRESA_CUIT", constants.EmpresaCUIT),
		EmpresaDireccion: getEnv("EMPRESA_DIR", constants.EmpresaDireccion),
		EmpresaTelefono:  getEnv("EMPRESA_TEL", constants.EmpresaTelefono),
		EmpresaEmail:     getEnv("EMPRESA_MAIL", constants.EmpresaEmail),
	}

	// Validación
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable vacía")
	}
	hasSheets := cfg.SpreadsheetID != "" && cfg.GoogleSAJSONPath != ""
	if !hasSheets && cfg.CatalogXLSXPath == "" {
		return nil, fmt.Errorf("falta la fuente del catálogo: SPREADSHEET_ID + GOOGLE_SA_JSON_PATH, o CATALOG_XLSX_PATH")
	}

	return cfg, nil
}

// UseSheets indica si el catálogo sale de Google Sheets
func (c *Config) UseSheets() bool {
	return c.SpreadsheetID != "" && c.GoogleSAJSONPath != ""
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}
