package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/config"
	dbpkg "github.com/BrilhoLimpeza/cleaning-scheduler/internal/db"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/infra/cache"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/infra/invoicing"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/infra/storage"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/routes"
	ucAppointment "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

func main() {

	cfg := config.Load()

	logs.Init(cfg.AppEnv)
	defer logs.Sync()

	db := dbpkg.NewDB(cfg)

	// --------------------------------------------------
	// Cobrança (Mercado Pago ou mock em dev)
	// --------------------------------------------------
	var invoicer ucAppointment.Invoicer
	if cfg.InvoiceMock {
		invoicer = invoicing.NewMock()
		logs.Log.Warn("invoicing in mock mode")
	} else {
		mp, err := invoicing.New(cfg.MPAccessToken)
		if err != nil {
			logs.Log.Fatal("failed to configure invoicing", zap.Error(err))
		}
		invoicer = mp
	}

	// --------------------------------------------------
	// Redis (cache de URLs de cobrança)
	// --------------------------------------------------
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	invoiceURLs := cache.NewRedisInvoiceCache(redisClient)

	// --------------------------------------------------
	// Fotos de serviço (S3)
	// --------------------------------------------------
	photos := storage.NewPhotoStore(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Invoicer:   invoicer,
		InvoiceURL: invoiceURLs,
		Photos:     photos,
	})

	logs.Log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logs.Log.Fatal("failed to start server", zap.Error(err))
	}
}
