package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lotodata/megasena-backend/internal/config"
	mongorepo "github.com/lotodata/megasena-backend/internal/repositories/mongodb"
	"github.com/lotodata/megasena-backend/internal/services"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/lotodata/megasena-backend/pkg/logger"
	"github.com/lotodata/megasena-backend/pkg/mongodb"
)

// Batch importer for historical draws. Usage:
//
//	go run cmd/scripts/import_draws.go -inicio 2800 -fim 2850
//
// Omitting -fim imports up to the current draw.
func main() {
	inicio := flag.Int("inicio", 2800, "first draw number to import")
	fim := flag.Int("fim", 0, "last draw number to import (0 = latest)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	resultRepo := mongorepo.NewResultRepository(db)

	caixaClient := caixa.NewClient(cfg.Caixa.BaseURL, cfg.Caixa.UserAgent,
		time.Duration(cfg.Caixa.TimeoutSeconds)*time.Second)
	drawService := services.NewDrawService(resultRepo, caixaClient, zlog)
	importService := services.NewImportService(drawService, resultRepo, zlog,
		cfg.Import.MaxBatchSize, time.Duration(cfg.Import.DelayMs)*time.Millisecond)

	var end *int
	if *fim > 0 {
		end = fim
	}

	result, err := importService.ImportRange(context.Background(), *inicio, end)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
