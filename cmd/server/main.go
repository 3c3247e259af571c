package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"lumenstudio/internal/api"
	"lumenstudio/internal/entities"
	"lumenstudio/internal/repository"
	"lumenstudio/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	cfg, err := loadDayConfig()
	if err != nil {
		log.Fatalf("Failed to load day configuration: %v", err)
	}
	// Fail fast on a misconfigured open-hours window instead of serving
	// empty availability.
	if _, err := service.GenerateSlots(time.Now().In(cfg.Location), cfg); err != nil {
		log.Fatalf("Invalid open-hours configuration: %v", err)
	}

	repo := repository.NewReservationRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	svc := service.NewReservationService(repo, cfg)
	jobSvc := service.NewJobService(repository.NewJobRepository(db))

	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() {
		if err := jobSvc.ExpireStaleHolds(); err != nil {
			log.Printf("Stale hold sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule stale hold sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	userHandler := api.NewUserReservationHandler(svc)
	adminHandler := api.NewAdminHandler(svc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability", userHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", userHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", userHandler.CancelReservation).Methods("DELETE")
	r.HandleFunc("/api/prices", userHandler.GetPrices).Methods("GET")
	r.HandleFunc("/api/prices/quote", userHandler.QuotePrice).Methods("GET")

	// Administrative endpoints
	r.HandleFunc("/api/reservations", adminHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", adminHandler.UpdateReservationStatus).Methods("PATCH")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{envOr("ALLOWED_ORIGIN", "*")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := envOr("PORT", "8080")
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}

func loadDayConfig() (entities.DayConfig, error) {
	loc := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return entities.DayConfig{}, fmt.Errorf("bad TIMEZONE %q: %w", tz, err)
		}
		loc = l
	}

	cfg := entities.DayConfig{Location: loc}
	var err error
	if cfg.OpenHour, err = envInt("OPEN_HOUR", 9); err != nil {
		return entities.DayConfig{}, err
	}
	if cfg.CloseHour, err = envInt("CLOSE_HOUR", 21); err != nil {
		return entities.DayConfig{}, err
	}
	if cfg.SlotMinutes, err = envInt("SLOT_MINUTES", 60); err != nil {
		return entities.DayConfig{}, err
	}
	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", name, v, err)
	}
	return n, nil
}
