package bootstrap

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusgate/student-portal/internal/app/controllers"
	appRoutes "github.com/campusgate/student-portal/internal/app/routes"
	"github.com/campusgate/student-portal/internal/app/session"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/config"
	appMiddleware "github.com/campusgate/student-portal/internal/middleware"
	"github.com/campusgate/student-portal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	BackendClient        *backend.Client
	SessionRegistry      *session.Registry
	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	DashboardController  *appControllers.DashboardController
	HostelController     *appControllers.HostelController
	CourseFeesController *appControllers.CourseFeesController
	AcademicsController  *appControllers.AcademicsController
	ExamController       *appControllers.ExamController
	BusPassController    *appControllers.BusPassController
	SessionMiddleware    *appMiddleware.SessionMiddleware
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the backend client, session registry, middleware
// and controllers together.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	client, err := backend.New(cfg, lgr)
	if err != nil {
		return nil, err
	}

	registry := session.NewRegistry(client, cfg.SessionTTL(), lgr)
	sessionMw := appMiddleware.NewSessionMiddleware(registry, cfg.Session.CookieName)

	deps := &Dependencies{
		BackendClient:        client,
		SessionRegistry:      registry,
		AuthController:       appControllers.NewAuthController(registry, cfg.Session.CookieName, lgr),
		ProfileController:    appControllers.NewProfileController(lgr),
		DashboardController:  appControllers.NewDashboardController(lgr),
		HostelController:     appControllers.NewHostelController(cfg, lgr),
		CourseFeesController: appControllers.NewCourseFeesController(cfg, lgr),
		AcademicsController:  appControllers.NewAcademicsController(lgr),
		ExamController:       appControllers.NewExamController(lgr),
		BusPassController:    appControllers.NewBusPassController(lgr),
		SessionMiddleware:    sessionMw,
		Logger:               lgr,
	}

	lgr.Info().Str("backend", cfg.Backend.BaseURL).Msg("Dependencies wired")
	return deps, nil
}

// SetupRouter builds the gin engine: run mode, templates, static assets,
// middleware chain and the route table.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.LowercasePath())
	router.Use(deps.SessionMiddleware.Resolve())

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "web/static")

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.ProfileController,
		deps.DashboardController,
		deps.HostelController,
		deps.CourseFeesController,
		deps.AcademicsController,
		deps.ExamController,
		deps.BusPassController,
		deps.SessionMiddleware,
	)

	return router
}
