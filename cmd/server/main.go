package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopledger/inventory-billing-backend/internal/admin"
	"github.com/shopledger/inventory-billing-backend/internal/auth"
	"github.com/shopledger/inventory-billing-backend/internal/catalog"
	"github.com/shopledger/inventory-billing-backend/internal/extract"
	"github.com/shopledger/inventory-billing-backend/internal/inventory"
	"github.com/shopledger/inventory-billing-backend/internal/ledger"
	"github.com/shopledger/inventory-billing-backend/internal/reports"
	"github.com/shopledger/inventory-billing-backend/pkg/config"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"github.com/shopledger/inventory-billing-backend/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Schema migration is fatal on failure; every step is idempotent, so the
	// operator can retry after inspecting the database file.
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	catalogSvc := catalog.NewService(db)
	catalogSvc.SeedFromFile(cfg.SeedPath)

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler := auth.NewHandler(db, cfg)
		v1.POST("/auth/login", authHandler.Login)

		ledgerHandler := ledger.NewHandler(db)
		v1.GET("/invoices", ledgerHandler.List)
		v1.POST("/invoices", ledgerHandler.Create)
		v1.GET("/invoices/:id", ledgerHandler.Get)

		inventoryHandler := inventory.NewHandler(db)
		v1.GET("/movements", inventoryHandler.List)
		v1.POST("/movements", inventoryHandler.Save)

		catalogHandler := catalog.NewHandler(db)
		v1.GET("/items", catalogHandler.List)
		v1.POST("/items", catalogHandler.Upsert)
		v1.POST("/items/import", catalogHandler.Import)

		reportsHandler := reports.NewHandler(db)
		v1.GET("/reports/daily", reportsHandler.GetDaily)
		v1.GET("/reports/daily/export", reportsHandler.DownloadDaily)

		extractHandler := extract.NewHandler(db)
		v1.GET("/extract/invoices", extractHandler.Invoices)
		v1.GET("/extract/lines", extractHandler.Lines)
		v1.GET("/extract/movements", extractHandler.Movements)
		v1.GET("/extract/collections", extractHandler.Collections)
		v1.GET("/extract/dues", extractHandler.Dues)

		// Admin deletion interface, session-gated
		adminHandler := admin.NewHandler(db)
		protected := v1.Group("/admin")
		protected.Use(middleware.AuthRequired(cfg.JWTSecret))
		{
			protected.DELETE("/invoices/:id", adminHandler.DeleteInvoice)
			protected.DELETE("/lines/:id", adminHandler.DeleteLine)
			protected.DELETE("/collections/:id", adminHandler.DeleteCollection)
			protected.DELETE("/dues/:id", adminHandler.DeleteDue)
			protected.DELETE("/movements/:id", adminHandler.DeleteMovement)
			protected.DELETE("/items/:name", adminHandler.DeleteItem)
			protected.GET("/activity", adminHandler.ListActivity)
		}
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
