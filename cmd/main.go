package main

import (
	"context"
	"errors"
	"log"
	"os"

	"bidback/cmd/controllers"
	"bidback/internal/config"
	"bidback/internal/repo"
	"bidback/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := repo.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}

	if err := repo.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	if err := repo.EnsureDefaultSource(db, cfg.SourceURL, cfg.SourceComment); err != nil {
		log.Fatalf("seed default source: %v", err)
	}

	sourceService, err := services.NewSourceService(db)
	if err != nil {
		log.Fatalf("create source service: %v", err)
	}

	logService, err := services.NewLogService(db)
	if err != nil {
		log.Fatalf("create log service: %v", err)
	}

	importService, err := services.NewImportService(db)
	if err != nil {
		log.Fatalf("create import service: %v", err)
	}

	recordService, err := services.NewRecordService()
	if err != nil {
		log.Fatalf("create record service: %v", err)
	}

	datasetService, err := services.NewDatasetService(recordService, logService)
	if err != nil {
		log.Fatalf("create dataset service: %v", err)
	}

	metricsService, err := services.NewMetricsService(datasetService)
	if err != nil {
		log.Fatalf("create metrics service: %v", err)
	}

	fetchService, err := services.NewFetchService(nil)
	if err != nil {
		log.Fatalf("create fetch service: %v", err)
	}

	xlsxService, err := services.NewXlsxService()
	if err != nil {
		log.Fatalf("create xlsx service: %v", err)
	}

	archiveService, err := services.NewArchiveService(xlsxService, logService)
	if err != nil {
		log.Fatalf("create archive service: %v", err)
	}

	pipelineService, err := services.NewPipelineService(
		sourceService,
		fetchService,
		xlsxService,
		archiveService,
		importService,
		datasetService,
		logService,
	)
	if err != nil {
		log.Fatalf("create pipeline service: %v", err)
	}

	if cfg.SampleOnStart {
		if _, err := datasetService.LoadSample(context.Background()); err != nil {
			log.Printf("load sample dataset: %v", err)
		}
	}

	sourcesController, err := controllers.NewSourcesController(sourceService)
	if err != nil {
		log.Fatalf("create sources controller: %v", err)
	}

	logsController, err := controllers.NewLogsController(logService)
	if err != nil {
		log.Fatalf("create logs controller: %v", err)
	}

	refreshController, err := controllers.NewRefreshController(pipelineService)
	if err != nil {
		log.Fatalf("create refresh controller: %v", err)
	}

	datasetController, err := controllers.NewDatasetController(pipelineService, datasetService)
	if err != nil {
		log.Fatalf("create dataset controller: %v", err)
	}

	metricsController, err := controllers.NewMetricsController(metricsService)
	if err != nil {
		log.Fatalf("create metrics controller: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if err := controllers.RegisterHealthRoutes(router); err != nil {
		log.Fatalf("register health routes: %v", err)
	}
	if err := sourcesController.RegisterRoutes(router); err != nil {
		log.Fatalf("register sources routes: %v", err)
	}
	if err := logsController.RegisterRoutes(router); err != nil {
		log.Fatalf("register logs routes: %v", err)
	}
	if err := refreshController.RegisterRoutes(router); err != nil {
		log.Fatalf("register refresh routes: %v", err)
	}
	if err := datasetController.RegisterRoutes(router); err != nil {
		log.Fatalf("register dataset routes: %v", err)
	}
	if err := metricsController.RegisterRoutes(router); err != nil {
		log.Fatalf("register metrics routes: %v", err)
	}

	if err := startCron(pipelineService, cfg.RefreshSchedule); err != nil {
		log.Fatalf("start cron: %v", err)
	}

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

type pipelineRefresher interface {
	Refresh(ctx context.Context, force bool) error
}

func startCron(service pipelineRefresher, schedule string) error {
	if service == nil {
		return errors.New("pipeline service is nil")
	}

	scheduler := cron.New()

	if _, err := scheduler.AddFunc(schedule, func() {
		if err := service.Refresh(context.Background(), false); err != nil {
			log.Printf("refresh sources: %v", err)
		}
	}); err != nil {
		return err
	}

	scheduler.Start()
	return nil
}
