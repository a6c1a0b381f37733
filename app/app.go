package app

import (
	"house-auction-api/internal/config"
	"house-auction-api/internal/controller"
	"house-auction-api/internal/event"
	"house-auction-api/internal/repo"
	"house-auction-api/internal/service"
	"house-auction-api/internal/settlement"
	"house-auction-api/pkg/http_server"
	"house-auction-api/pkg/postgres"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err.Error() == "no change" {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func newRepositories(cfg *config.Config) (*repo.Repositories, func()) {
	if cfg.PostgresConn == "" {
		log.Println("No POSTGRES_CONN set, using in-memory store...")

		return repo.NewMemoryRepositories(), func() {}
	}

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: ", err)
	}

	log.Println("Running migrations...")
	runMigrations(postgresDB, cfg.PostgresDatabase)

	return repo.NewPostgresRepositories(postgresDB), func() {
		if err := postgresDB.Close(); err != nil {
			log.Println("Error closing database: ", err)
		}
	}
}

// logEvents drains the domain event stream into the process log so every
// accepted mutation leaves a trace even without external subscribers.
func logEvents(bus *event.Bus) {
	events := bus.Subscribe()
	go func() {
		for e := range events {
			log.Printf("event %s: listing=%d bidder=%q amount=%d sequence=%d",
				e.Kind, e.ListingId, e.Bidder, e.Amount, e.Sequence)
		}
	}()
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	repositories, closeRepos := newRepositories(cfg)
	defer closeRepos()

	bus := event.NewBus(cfg.EventBufferSize)
	defer bus.Close()
	logEvents(bus)

	services := service.NewServices(service.Deps{
		Repos:    repositories,
		Admins:   cfg.Admins,
		Bus:      bus,
		Notifier: settlement.LogNotifier{},
	})
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: ", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: ", err)
	} else {
		log.Println("Successful shutdown")
	}
}
