package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"visitcoord/internal/coordinator"
	"visitcoord/internal/database"
)

var gitRevision = "unknown"

type App struct {
	logger *slog.Logger

	dbm        *database.DatabaseManager
	lifecycle  *coordinator.Lifecycle
	evaluators *coordinator.EvaluatorCollector
	client     *coordinator.ClientCollector
	aggregator *coordinator.Aggregator
	admin      *coordinator.Admin

	api *HttpServer
}

func NewApp(dbm *database.DatabaseManager) *App {
	lifecycle := coordinator.NewLifecycle(dbm)

	app := &App{
		logger:     slog.Default(),
		dbm:        dbm,
		lifecycle:  lifecycle,
		evaluators: coordinator.NewEvaluatorCollector(dbm, lifecycle),
		client:     coordinator.NewClientCollector(dbm, lifecycle, coordinator.NewLogNotifier()),
		aggregator: coordinator.NewAggregator(dbm),
		admin:      coordinator.NewAdmin(dbm),
	}

	app.api = NewHttpServer(app, viper.GetString("api_addr"))

	return app
}

func (app *App) Run() {
	go func() {
		if err := app.api.Listen(); err != nil {
			app.logger.Error("api error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting")
	_ = app.api.Shutdown()
}

func main() {
	conf := flag.String("config", "visitcoord.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	loadConfig(*conf)

	slog.Info("starting visitcoord server", slog.String("version", gitRevision))

	db, err := database.GetDatabase(viper.GetString("db"), *debug)
	if err != nil {
		slog.Error("db error", slog.Any("error", err))
		os.Exit(1)
	}

	dbm := database.New(db)

	if err := dbm.Migrate(); err != nil {
		slog.Error("migrate error", slog.Any("error", err))
		os.Exit(1)
	}

	NewApp(dbm).Run()
}
