package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saveblush/annotate-api/api"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/sql"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/pgk/cron"
	"github.com/saveblush/annotate-api/pgk/notify"
	"github.com/saveblush/annotate-api/pgk/search"
)

func main() {
	// Init logger
	logger.InitLogger()

	// Init configuration
	err := config.InitConfig()
	if err != nil {
		logger.Log.Panicf("init configuration error: %s", err)
	}

	// Init connection database
	cfdb := &sql.Configuration{
		Host:         config.CF.Database.AnnotationSQL.Host,
		Port:         config.CF.Database.AnnotationSQL.Port,
		Username:     config.CF.Database.AnnotationSQL.Username,
		Password:     config.CF.Database.AnnotationSQL.Password,
		DatabaseName: config.CF.Database.AnnotationSQL.DatabaseName,
		MaxIdleConns: config.CF.Database.AnnotationSQL.MaxIdleConns,
		MaxOpenConns: config.CF.Database.AnnotationSQL.MaxOpenConns,
		MaxLifetime:  config.CF.Database.AnnotationSQL.MaxLifetime,
	}
	session, err := sql.InitConnection(cfdb)
	if err != nil {
		logger.Log.Panicf("init connection db error: %s", err)
	}

	// Set to global variable database
	sql.Database = session.Database

	// Debug db
	if !config.CF.App.Environment.Production() {
		sql.DebugDatabase()
	}

	// Migration db
	_ = sql.Migration(sql.Database)

	// Init search engine client
	engine, err := search.NewEngine(&config.CF.Search)
	if err != nil {
		logger.Log.Panicf("init search engine error: %s", err)
	}

	// Cron
	cron := cron.NewService()
	cron.Start()

	// Init api server
	srv := api.NewServer(search.NewService(engine))
	handler := srv.Serve()

	// Start app
	addr := flag.String("addr", fmt.Sprintf(":%d", config.CF.App.Port), "http service address")
	flag.Parse()
	server := &http.Server{
		Addr:    *addr,
		Handler: handler,
	}
	server.SetKeepAlivesEnabled(true)

	go func() {
		err = server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("App start error: %s", err)
		}
	}()
	logger.Log.Infof("App start on: %s", *addr)

	// Shutdown app
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Close notification hub
	go notify.NewService().Close()
	logger.Log.Info("Notification hub closed")

	// Close cron
	go cron.Stop()
	logger.Log.Info("Cron closed")

	// Close db
	go sql.CloseConnection(sql.Database)
	logger.Log.Info("Database connection closed")

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownRelease()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Log.Panicf("App shutdown error: %s", err)
	}
	logger.Log.Info("Gracefully shutting down")
}
