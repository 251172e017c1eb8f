package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/config"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/handlers"
	infraRepo "github.com/BrilhoLimpeza/cleaning-scheduler/internal/infra/repository"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	ucAppointment "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

// Deps agrupa os colaboradores externos montados no main: cobrança,
// cache de URLs e armazenamento de fotos.
type Deps struct {
	Invoicer   ucAppointment.Invoicer
	InvoiceURL ucAppointment.InvoiceURLCache
	Photos     handlers.PhotoStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, auditDispatcher)
	finishUC := ucAppointment.NewFinishAppointment(appointmentRepo, auditDispatcher)
	deleteUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)

	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		deps.Invoicer,
		deps.InvoiceURL,
		auditDispatcher,
	)

	cancelSeriesUC := ucAppointment.NewCancelSeries(appointmentRepo, auditDispatcher)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	listByCustomerUC := ucAppointment.NewListAppointmentsByCustomer(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	customerHandler := handlers.NewCustomerHandler(db)
	helperHandler := handlers.NewHelperHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(db, handlers.AppointmentUsecases{
		Create:         createUC,
		Update:         updateUC,
		Start:          startUC,
		Finish:         finishUC,
		Delete:         deleteUC,
		ChangeStatus:   changeStatusUC,
		CancelSeries:   cancelSeriesUC,
		ListByDate:     listByDateUC,
		ListByMonth:    listByMonthUC,
		ListByCustomer: listByCustomerUC,
	})

	photoHandler := handlers.NewPhotoHandler(db, deps.Photos)
	helperViewHandler := handlers.NewHelperViewHandler(appointmentRepo, startUC, finishUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (dono)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			owner := secured.Group("/me")
			owner.Use(middleware.RequireRole(middleware.RoleOwner))
			{
				// ------------------------------
				// CUSTOMERS
				// ------------------------------
				owner.GET("/customers", customerHandler.List)
				owner.POST("/customers", customerHandler.Create)
				owner.GET("/customers/:id", customerHandler.Get)
				owner.PATCH("/customers/:id", customerHandler.Update)
				owner.GET("/customers/:id/appointments", appointmentHandler.ListByCustomer)

				// ------------------------------
				// HELPERS
				// ------------------------------
				owner.GET("/helpers", helperHandler.List)
				owner.POST("/helpers", helperHandler.Create)
				owner.GET("/helpers/:id", helperHandler.Get)
				owner.PATCH("/helpers/:id", helperHandler.Update)
				owner.GET("/helpers/:id/fee-preview", helperHandler.FeePreview)
				owner.POST("/helpers/:id/login", helperHandler.CreateLogin)

				// ------------------------------
				// APPOINTMENTS
				// ------------------------------
				owner.POST("/appointments", appointmentHandler.Create)
				owner.GET("/appointments", appointmentHandler.ListByDate)
				owner.GET("/appointments/month", appointmentHandler.ListByMonth)
				owner.GET("/appointments/:id", appointmentHandler.Get)
				owner.PATCH("/appointments/:id", appointmentHandler.Update)
				owner.DELETE("/appointments/:id", appointmentHandler.Delete)

				owner.PATCH("/appointments/:id/start", appointmentHandler.Start)
				owner.PATCH("/appointments/:id/finish", appointmentHandler.Finish)
				owner.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
				owner.POST("/appointments/:id/cancel-series", appointmentHandler.CancelSeries)
				owner.POST("/appointments/:id/photo", photoHandler.Upload)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// VISÃO DA DIARISTA (mobile)
			// ------------------------------
			helperArea := secured.Group("/helper")
			helperArea.Use(middleware.RequireRole(middleware.RoleHelper))
			{
				helperArea.GET("/agenda", helperViewHandler.ListDay)
				helperArea.PATCH("/appointments/:id/start", helperViewHandler.Start)
				helperArea.PATCH("/appointments/:id/finish", helperViewHandler.Finish)
			}
		}
	}
}
