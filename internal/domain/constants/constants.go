package constants

// Matching
const (
	// MatchThreshold puntaje mínimo (0-100) para aceptar un match del catálogo
	MatchThreshold = 80
)

// AI Model
const (
	// GeminiModelName modelo usado por el extractor alternativo
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature temperatura 0 para extracción determinística
	AITemperature = 0.0

	// MaxRetries intentos contra la API de Gemini
	MaxRetries = 2

	// RetryDelay segundos de espera entre intentos
	RetryDelay = 2
)

// Sesiones
const (
	// SessionTTLMinutes minutos de inactividad antes de abandonar una sesión
	SessionTTLMinutes = 30

	// TurnTimeoutSeconds tope por turno (incluye catálogo y extractor IA)
	TurnTimeoutSeconds = 30
)

// Datos de la empresa (encabezado de los PDFs); sobreescribibles por env
const (
	EmpresaNombre    = "Zabalza Gladys Beatriz"
	EmpresaSub       = "OCASO – Ropa de trabajo"
	EmpresaCUIT      = "CUIT: 27-13058782-3"
	EmpresaDireccion = "Castelli 45 - San Vicente, Buenos Aires"
	EmpresaTelefono  = "Tel: 2224501287"
	EmpresaEmail     = "ocasoseguridadlaboral@gmail.com"
)
