package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/presupuestos-bot/config"
	"github.com/yourusername/presupuestos-bot/internal/delivery/telegram"
	"github.com/yourusername/presupuestos-bot/internal/domain/constants"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/excel"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/gemini"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/pdf"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/sheets"
	"github.com/yourusername/presupuestos-bot/internal/infrastructure/storage"
	"github.com/yourusername/presupuestos-bot/internal/usecase"
	"github.com/yourusername/presupuestos-bot/pkg/logger"
)

func main() {
	// Logger
	logger.Init()
	logger.InfoLogger.Println("🚀 Bot de presupuestos y remitos arrancando...")

	// Configuración
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuración inválida: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dependencias (Dependency Injection)

	// 1. Catálogo (solo lectura)
	var catalogRepo repository.CatalogRepository
	if cfg.UseSheets() {
		catalogRepo, err = sheets.NewCatalogRepository(ctx, cfg.GoogleSAJSONPath, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("❌ Catálogo Google Sheets no disponible: %v", err)
		}
		logger.InfoLogger.Println("✅ Catálogo: Google Sheets")
	} else {
		catalogRepo = excel.NewCatalogRepository(cfg.CatalogXLSXPath)
		logger.InfoLogger.Printf("✅ Catálogo: archivo local %s", cfg.CatalogXLSXPath)
	}

	// 2. Extractor IA (opcional, best-effort)
	var extractor repository.ItemExtractor
	if cfg.GeminiAPIKey != "" {
		extractor, err = gemini.NewItemExtractor(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.ErrorLogger.Printf("⚠️ Extractor Gemini no disponible, sigo sin IA: %v", err)
			extractor = nil
		} else {
			logger.InfoLogger.Printf("✅ Extractor IA listo (%s)", constants.GeminiModelName)
		}
	}

	// 3. Sesiones (Postgres si está configurado, memoria si no)
	sessionTTL := constants.SessionTTLMinutes * time.Minute
	sessionRepo := storage.NewSessionRepositoryFromEnv(sessionTTL)
	if janitor, ok := sessionRepo.(interface{ StartJanitor(context.Context) }); ok {
		janitor.StartJanitor(ctx)
	}
	logger.InfoLogger.Println("✅ Store de sesiones listo")

	// 4. Renderer de PDFs
	company := pdf.CompanyInfo{
		Nombre:    cfg.EmpresaNombre,
		Sub:       cfg.EmpresaSub,
		CUIT:      cfg.EmpresaCUIT,
		Direccion: cfg.EmpresaDireccion,
		Telefono:  cfg.EmpresaTelefono,
		Email:     cfg.EmpresaEmail,
	}
	if logo, err := os.ReadFile(cfg.LogoPath); err == nil {
		company.Logo = logo
	}
	renderer := pdf.NewRenderer(company)

	// 5. Pipeline de resolución
	resolver := usecase.NewResolveUseCase(extractor)

	// 6. Telegram bot handler
	botHandler, err := telegram.NewBotHandler(cfg.TelegramToken, resolver, catalogRepo, sessionRepo, renderer)
	if err != nil {
		log.Fatalf("❌ Bot handler no se pudo crear: %v", err)
	}
	logger.InfoLogger.Printf("✅ Telegram bot listo: @%s", botHandler.GetBotUsername())

	go func() {
		if err := botHandler.Start(ctx); err != nil {
			logger.ErrorLogger.Printf("❌ Error del bot: %v", err)
		}
	}()

	logger.InfoLogger.Println("🤖 Bot corriendo. Ctrl+C para detener.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.InfoLogger.Println("⏳ Señal de apagado recibida...")

	cancel()
	logger.InfoLogger.Println("✅ Bot detenido.")
}
