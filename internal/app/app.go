package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/config"
	"github.com/tlecomte/formatrack/internal/handler"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/obs"
	"github.com/tlecomte/formatrack/internal/repository/postgres"
	"github.com/tlecomte/formatrack/internal/service"
	"github.com/tlecomte/formatrack/internal/status"
)

// App représente l'application avec toutes ses dépendances
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger *slog.Logger
}

// New crée une nouvelle instance de l'application
func New(cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &App{
		config: cfg,
		logger: logger,
	}, nil
}

// Initialize initialise tous les composants de l'application
func (a *App) Initialize(ctx context.Context) error {
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	obs.Init()
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB établit la connexion PostgreSQL avec un connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer initialise le routeur HTTP et les handlers
func (a *App) setupServer() {
	// Couche repositories (accès aux données)
	utilisateurRepo := postgres.NewUtilisateurRepository(a.db)
	equipeRepo := postgres.NewEquipeRepository(a.db)
	formationRepo := postgres.NewFormationRepository(a.db)
	calendrierRepo := postgres.NewCalendrierRepository(a.db)
	devisRepo := postgres.NewDevisRepository(a.db)
	entrepriseRepo := postgres.NewEntrepriseRepository(a.db)
	notificationRepo := postgres.NewNotificationRepository(a.db)

	// Couche services (logique métier). Les statuts s'évaluent à la
	// journée : l'horloge injectée est tronquée à minuit UTC, la même
	// convention que les colonnes DATE lues par pgx. Une formation
	// n'expire pas en cours d'après-midi.
	now := func() time.Time { return status.StartOfDay(time.Now().UTC()) }
	authService := service.NewAuthService(
		utilisateurRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	utilisateurService := service.NewUtilisateurService(utilisateurRepo, equipeRepo, now)
	equipeService := service.NewEquipeService(equipeRepo, now)
	formationService := service.NewFormationService(formationRepo, utilisateurRepo, now)
	calendrierService := service.NewCalendrierService(calendrierRepo, utilisateurRepo)
	devisService := service.NewDevisService(devisRepo, utilisateurRepo)
	entrepriseService := service.NewEntrepriseService(a.db, entrepriseRepo)
	dashboardService := service.NewDashboardService(a.db, entrepriseRepo, equipeRepo, now)
	notificationService := service.NewNotificationService(notificationRepo, formationRepo, equipeRepo, a.logger, now)

	// Couche handlers HTTP
	authHandler := handler.NewAuthHandler(authService)
	utilisateurHandler := handler.NewUtilisateurHandler(utilisateurService)
	equipeHandler := handler.NewEquipeHandler(equipeService)
	formationHandler := handler.NewFormationHandler(formationService)
	calendrierHandler := handler.NewCalendrierHandler(calendrierService)
	devisHandler := handler.NewDevisHandler(devisService)
	entrepriseHandler := handler.NewEntrepriseHandler(entrepriseService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	authMiddleware := middleware.AuthMiddleware(authService)

	r := chi.NewRouter()

	// Middlewares globaux
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(obs.Instrument)

	// Endpoints publics
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", obs.Handler())

	// Endpoints protégés (token JWT requis)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Route("/utilisateurs", func(r chi.Router) {
			r.Get("/", utilisateurHandler.List)
			r.Post("/", utilisateurHandler.Create)
			r.Get("/export", utilisateurHandler.Export)
			r.Get("/{id}", utilisateurHandler.Get)
			r.Put("/{id}", utilisateurHandler.Update)
			r.Delete("/{id}", utilisateurHandler.Delete)
			r.Get("/{id}/formations", utilisateurHandler.GetFormations)
			r.Get("/{id}/statut", utilisateurHandler.GetStatut)
		})

		r.Route("/equipes", func(r chi.Router) {
			r.Get("/", equipeHandler.List)
			r.Post("/", equipeHandler.Create)
			r.Get("/{id}", equipeHandler.Get)
			r.Put("/{id}", equipeHandler.Update)
			r.Delete("/{id}", equipeHandler.Delete)
		})

		r.Route("/formations", func(r chi.Router) {
			r.Post("/", formationHandler.Create)
			r.Get("/{id}", formationHandler.Get)
			r.Put("/{id}", formationHandler.Update)
			r.Delete("/{id}", formationHandler.Delete)
		})

		r.Route("/calendrier", func(r chi.Router) {
			r.Get("/", calendrierHandler.List)
			r.Post("/", calendrierHandler.Create)
			r.Get("/{id}", calendrierHandler.Get)
			r.Put("/{id}", calendrierHandler.Update)
			r.Delete("/{id}", calendrierHandler.Delete)
		})

		r.Route("/devis", func(r chi.Router) {
			r.Get("/", devisHandler.List)
			r.Post("/", devisHandler.Create)
			r.Get("/{id}", devisHandler.Get)
			r.Put("/{id}/statut", devisHandler.UpdateStatut)
		})

		r.Route("/entreprises", func(r chi.Router) {
			r.Get("/{id}", entrepriseHandler.Get)
			r.Get("/{id}/dashboard", dashboardHandler.Get)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Post("/verification", notificationHandler.Verifier)
			r.Post("/{id}/lu", notificationHandler.MarquerLue)
		})
	})

	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Run démarre le serveur HTTP
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown arrête proprement l'application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
