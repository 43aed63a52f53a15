package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ammotrack/backend/config"
	httpDelivery "github.com/ammotrack/backend/internal/delivery/http"
	"github.com/ammotrack/backend/internal/infrastructure/cache"
	"github.com/ammotrack/backend/internal/infrastructure/store"
	"github.com/ammotrack/backend/internal/usecase"
)

func main() {
	// Load .env if present; real deployments use environment variables
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting AmmoTrack Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize persistence
	db, err := store.Initialize(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	catalogStore := store.NewCatalogStore(db)
	dealStore := store.NewDealStore(db)
	priceCache := cache.NewProductCache(30 * time.Second)

	// Initialize the extraction engine: wide bands for product pages, the
	// tighter listing bands for search/category pages
	extractor := usecase.NewExtractor(usecase.ExtractorConfig{
		PriceRange: usecase.PriceRange{
			Min: cfg.Extraction.PriceMin,
			Max: cfg.Extraction.PriceMax,
		},
		QuantityRange: usecase.QuantityRange{
			Min: cfg.Extraction.QuantityMin,
			Max: cfg.Extraction.QuantityMax,
		},
		MinDiscountPercent: cfg.Extraction.MinDiscountPercent,
		EnableDebugLogging: cfg.Extraction.DebugLogging,
	})

	listingExtractor := usecase.NewExtractor(usecase.ExtractorConfig{
		PriceRange: usecase.PriceRange{
			Min: cfg.Extraction.ListingPriceMin,
			Max: cfg.Extraction.ListingPriceMax,
		},
		QuantityRange: usecase.QuantityRange{
			Min: cfg.Extraction.ListingQuantityMin,
			Max: cfg.Extraction.ListingQuantityMax,
		},
		MinDiscountPercent: cfg.Extraction.MinDiscountPercent,
		EnableDebugLogging: cfg.Extraction.DebugLogging,
	})

	dealExtractor := usecase.NewDealExtractor(usecase.DealExtractorConfig{
		MinConfidence:      cfg.Extraction.MinDealConfidence,
		MinDiscountPercent: cfg.Extraction.MinDiscountPercent,
		EnableDebugLogging: cfg.Extraction.DebugLogging,
	})

	log.Printf("Extraction: price band %.2f-%.2f, deal threshold %.2f, debug=%v",
		cfg.Extraction.PriceMin, cfg.Extraction.PriceMax,
		cfg.Extraction.MinDealConfidence, cfg.Extraction.DebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogStore, dealStore, extractor, listingExtractor, dealExtractor, priceCache)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
