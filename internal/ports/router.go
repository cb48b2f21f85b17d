package ports

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"bookpay/internal/config"
	"bookpay/internal/ports/rest"
	"bookpay/internal/service"
	"bookpay/pkg/e"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	logger *slog.Logger
	server *http.Server
	cfg    *config.Config
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, orderService *service.Service) *Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Http.Port),
		Handler:      InitRouter(ctx, cfg, logger, orderService),
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
	}

	return &Server{
		logger: logger,
		server: server,
		cfg:    cfg,
	}
}

func InitRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger, orderService *service.Service) *gin.Engine {
	r := gin.Default()
	promHandler := promhttp.Handler()

	h := rest.NewHandler(logger, orderService, cfg.VNPay.FrontendResultURL)
	docsURL := ginSwagger.URL(fmt.Sprintf("http://localhost:%s/swagger/doc.json", cfg.Http.Port))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.VNPay.FrontendResultURL, "http://localhost:8080"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))

	r.GET("/", h.Homepage)
	r.GET("/metrics", gin.WrapH(promHandler))
	r.POST("/orders", h.PostOrder)
	r.GET("/orders/:txnRef", h.GetOrder)
	r.POST("/payments/vnpay", h.CreatePayment)
	r.GET("/payments/vnpay/return", h.Return)
	r.GET("/payments/vnpay/ipn", h.IPN)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, docsURL))

	return r
}

func (s *Server) Run(ctx context.Context) error {
	errResult := make(chan error, 1)
	go func() {
		s.logger.Info("starting listening", slog.String("address", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errResult <- fmt.Errorf("http server failed: %w", err)
		} else if err == http.ErrServerClosed {
			s.logger.Info("HTTP server stopped gracefully")
			errResult <- nil
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server due to context cancellation")
		if err := s.Stop(); err != nil {
			return e.Wrap("failed to stop HttpServer gracefully", err)
		}
		return ctx.Err()
	case err := <-errResult:
		return err
	}
}

func (s *Server) Stop() error {
	shutDownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(shutDownCtx)
	s.logger.Info("Shutting down HTTP server")
	if err != nil {
		s.logger.Error("failed to shutdown HTTP Server", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("HTTP server shut down successfully")
	return nil
}
