package main

import (
	"beacon/bizerror"
	"beacon/client/es"
	"beacon/client/oss"
	"beacon/currency"
	"beacon/domain/project"
	"beacon/export"
	"beacon/indices"
	"beacon/indices/search"
	"beacon/infra/tracing"
	"beacon/persistence"
	"beacon/servehttp"
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	closer, err := tracing.Bootstrap()
	if err != nil {
		log.Fatalf("tracing bootstrap failed %v\n", err)
	}
	defer closer.Close()

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(&persistence.Snapshot{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	project.Bootstrap(context.Background())

	es.CreateClientFromEnv()
	indices.Bootstrap()
	oss.Bootstrap()

	currencyService := currency.NewServiceFromEnv()
	currencyService.RefreshRates(context.Background())
	go currencyService.AutoRefresh(context.Background(), time.Hour)

	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "beacon")
	})

	project.RegisterProjectsRestAPI(engine)
	project.RegisterTasksRestAPI(engine)
	project.RegisterCommentsRestAPI(engine)
	project.RegisterRisksRestAPI(engine)
	project.RegisterFilesRestAPI(engine)
	project.RegisterAnalyticsRestAPI(engine, currencyService)
	currency.RegisterCurrenciesRestAPI(engine, currencyService)
	export.RegisterExportRestAPI(engine, currencyService)
	indices.RegisterIndicesRestAPI(engine)
	search.RegisterProjectSearchRestAPI(engine)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	servehttp.StartHTTPServer(engine, addr)
}
