package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sweetworks/sweetshop-api/internal/config"
	dbpkg "github.com/sweetworks/sweetshop-api/internal/db"
	"github.com/sweetworks/sweetshop-api/internal/middleware"
	"github.com/sweetworks/sweetshop-api/internal/routes"
)

func main() {

	// prices serialize as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
