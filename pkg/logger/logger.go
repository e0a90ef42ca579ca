package logger

import (
	"log"
	"os"
)

var (
	// InfoLogger logs informativos de la aplicación
	InfoLogger *log.Logger

	// ErrorLogger logs de errores
	ErrorLogger *log.Logger
)

// Init inicializa los loggers globales
func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
