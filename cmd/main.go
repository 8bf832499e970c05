package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"kpi-service/internal/config"
	"kpi-service/internal/database/postgres"
	kpiredis "kpi-service/internal/database/redis"
	"kpi-service/internal/handlers"
	"kpi-service/internal/repository"
	"kpi-service/internal/services"
	"kpi-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/feedmill", "log", "kpi_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFile := filepath.Join(logDir, fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewTextHandler(file, nil)))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	log.Printf("connecting to PostgreSQL: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connecting to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	// The cache is optional: without Redis every request recomputes.
	var cache *services.ResultCache
	if redisClient, err := kpiredis.NewRedisClient(
		cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB); err != nil {
		log.Printf("redis unavailable, kpi cache disabled: %s", err)
	} else {
		defer redisClient.Close()
		cache = services.NewResultCache(redisClient.GetClient(), cfg.CacheTTL)
	}

	// repositories
	batchRepo := repository.NewBatchRepository(db)
	energyRepo := repository.NewEnergyRepository(db)
	processRepo := repository.NewProcessRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	qualityRepo := repository.NewQualityRepository(db)
	siloRepo := repository.NewSiloRepository(db)
	downtimeRepo := repository.NewDowntimeRepository(db)
	baggingRepo := repository.NewBaggingRepository(db)

	// calculators + engine
	engine := services.NewEngine(
		worker.NewPool(cfg.EngineWorkers),
		cache,
		services.NewProductionCalculator(batchRepo, cfg.QueryTimeout),
		services.NewEnergyCalculator(energyRepo, batchRepo, cfg.MainMeterID, cfg.QueryTimeout),
		services.NewSteamCalculator(processRepo, batchRepo, cfg.QueryTimeout),
		services.NewAvailabilityCalculator(scheduleRepo, cfg.QueryTimeout),
		services.NewQualityCalculator(qualityRepo, cfg.QueryTimeout),
		services.NewRecipeCalculator(batchRepo, cfg.QueryTimeout),
		services.NewSilosCalculator(siloRepo, batchRepo, cfg.QueryTimeout),
		services.NewReliabilityCalculator(downtimeRepo, scheduleRepo, cfg.QueryTimeout),
		services.NewPackagingCalculator(baggingRepo, cfg.QueryTimeout),
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("KPI service is healthy")
	})

	kpiHandler := handlers.NewKPIHandler(engine)
	kpiHandler.Register(app)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("starting kpi-service on port %s", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutting down server...")
}
