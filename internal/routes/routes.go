package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	"github.com/BruksfildServices01/mv-autocenter/internal/auth"
	"github.com/BruksfildServices01/mv-autocenter/internal/config"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/handlers"
	infraRepo "github.com/BruksfildServices01/mv-autocenter/internal/infra/repository"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
	"github.com/BruksfildServices01/mv-autocenter/internal/password"
	"github.com/BruksfildServices01/mv-autocenter/internal/session"
	"github.com/BruksfildServices01/mv-autocenter/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/mv-autocenter/internal/usecase/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/usecase/report"
)

// Deps são os singletons criados em main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *slog.Logger
	Sessions session.Store
	Audit    audit.Sink
	Hasher   password.Hasher
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

// RegisterRoutes monta a API. A função devolvida encerra os workers de fundo.
func RegisterRoutes(r *gin.Engine, d Deps) (func(), error) {
	cfg := d.Config
	loc := timezone.Location(cfg.ShopTimezone)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB, d.Hasher, d.Audit)
	clientRepo := infraRepo.NewClientGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	productRepo := infraRepo.NewProductGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	settingRepo := infraRepo.NewSettingGormRepository(d.DB)

	authService, err := auth.NewService(
		userRepo,
		d.Hasher,
		d.Sessions,
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		cfg.SessionTTL,
	)
	if err != nil {
		return nil, err
	}
	authService.WithRecorder(d.Metrics)

	loginLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.LoginRatePerMin,
		Burst:     cfg.LoginBurst,
	})

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateService(appointmentRepo, d.Audit)
	startAppointmentUC := ucAppointment.NewStartAppointment(appointmentRepo, d.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)

	reports := report.NewService(appointmentRepo, productRepo, loc)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService, d.Audit)
	meHandler := handlers.NewMeHandler()
	clientHandler := handlers.NewClientHandler(clientRepo, d.Metrics)
	employeeHandler := handlers.NewEmployeeHandler(userRepo, d.Metrics, cfg.CheckEmailDomain)
	productHandler := handlers.NewProductHandler(productRepo, d.Metrics)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, d.Metrics)
	settingsHandler := handlers.NewSettingsHandler(settingRepo, d.Audit)
	reportHandler := handlers.NewReportHandler(reports)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		startAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		loc,
		d.Metrics,
	)

	// ======================================================
	// 🩺 OPERAÇÃO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().In(loc)})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authService.Tokens(), d.Sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			dashboard := secured.Group("/dashboard", middleware.RequireMenu(navigation.Dashboard))
			dashboard.GET("", reportHandler.Dashboard)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			clients := secured.Group("/clients", middleware.RequireMenu(navigation.Clients))
			{
				clients.GET("", clientHandler.List)
				clients.POST("", clientHandler.Create)
				clients.GET("/:id", clientHandler.Get)
				clients.PATCH("/:id", clientHandler.Update)
				clients.DELETE("/:id", clientHandler.Delete)
				clients.POST("/:id/vehicles", clientHandler.AddVehicle)
				clients.DELETE("/:id/vehicles/:vehicleId", clientHandler.RemoveVehicle)
			}

			// ------------------------------
			// EMPLOYEES
			// ------------------------------
			employees := secured.Group("/employees", middleware.RequireMenu(navigation.Employees))
			{
				employees.GET("", employeeHandler.List)
				employees.POST("", employeeHandler.Create)
				employees.GET("/:id", employeeHandler.Get)
				employees.PATCH("/:id", employeeHandler.Update)
				employees.DELETE("/:id", employeeHandler.Delete)
			}

			// ------------------------------
			// STOCK
			// ------------------------------
			products := secured.Group("/products", middleware.RequireMenu(navigation.Stock))
			{
				products.GET("", productHandler.List)
				products.GET("/low-stock", productHandler.LowStock)
				products.POST("", productHandler.Create)
				products.PATCH("/:id", productHandler.Update)
				products.PATCH("/:id/quantity", productHandler.SetQuantity)
				products.DELETE("/:id", productHandler.Delete)
			}

			// ------------------------------
			// SERVICE CATALOG
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			services := secured.Group("/services", middleware.RequireMenu(navigation.Reports))
			{
				services.POST("", serviceHandler.Create)
				services.PATCH("/:id", serviceHandler.Update)
			}

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", middleware.RequireMenu(navigation.NewService), appointmentHandler.Create)
			schedule := secured.Group("/appointments", middleware.RequireMenu(navigation.Schedule))
			{
				schedule.GET("", appointmentHandler.ListByDate)
				schedule.GET("/month", appointmentHandler.ListByMonth)
				schedule.PATCH("/:id/start", appointmentHandler.Start)
				schedule.PATCH("/:id/complete", appointmentHandler.Complete)
				schedule.PATCH("/:id/cancel", appointmentHandler.Cancel)
			}

			// ------------------------------
			// REPORTS / SETTINGS
			// ------------------------------
			secured.GET("/reports", middleware.RequireMenu(navigation.Reports), reportHandler.Report)

			settings := secured.Group("/settings", middleware.RequireMenu(navigation.Settings))
			{
				settings.GET("", settingsHandler.Get)
				settings.PUT("", settingsHandler.Put)
			}
		}
	}

	return loginLimiter.Stop, nil
}
