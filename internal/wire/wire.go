package wire

import (
	"net/http"

	"crossfit-api/internal/adaptor"
	"crossfit-api/internal/data/repository"
	"crossfit-api/internal/notifier"
	"crossfit-api/internal/usecase"
	"crossfit-api/pkg/middleware"
	"crossfit-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(repo *repository.Repository, config *utils.Config, notify notifier.Notifier, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, notify, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	authenticate := middleware.Authenticate(service.Auth, logger)

	wireAuth(r, handler.Auth, authenticate)
	wireUser(r, handler.User, authenticate, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
