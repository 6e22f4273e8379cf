package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/pos_frontend/api"
	"bitbucket.org/mmdatafocus/pos_frontend/config"
	"bitbucket.org/mmdatafocus/pos_frontend/middlewares"
	"bitbucket.org/mmdatafocus/pos_frontend/suggest"
	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

const defaultPort = "8080"

func newRouter(a *app) *gin.Engine {
	r := gin.New()

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS: require an explicit allowlist via
	// CORS_ALLOWED_ORIGINS (comma-separated) in production; allow all in
	// non-production for developer convenience.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.SessionMiddleware())
	r.Use(customErrorLogger(a.logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/products", a.listProducts)
		apiGroup.GET("/categories", a.listCategories)
		apiGroup.GET("/sales", a.listSales)
		apiGroup.GET("/sales/:id", a.getSale)

		apiGroup.GET("/dashboard/stats", a.dashboardStats)
		apiGroup.GET("/dashboard/top-selling", a.topSelling)
		apiGroup.GET("/dashboard/reorder-alerts", a.reorderAlerts)

		apiGroup.GET("/pos/cart", a.getCart)
		apiGroup.POST("/pos/cart/items", a.addCartItem)
		apiGroup.PUT("/pos/cart/items/:productId", a.setCartQuantity)
		apiGroup.DELETE("/pos/cart/items/:productId", a.removeCartItem)
		apiGroup.POST("/pos/cart/checkout", a.checkoutCart)
		apiGroup.DELETE("/pos/cart", a.clearCart)

		apiGroup.GET("/sales-form", a.getSalesForm)
		apiGroup.POST("/sales-form/rows", a.appendFormRow)
		apiGroup.PUT("/sales-form/rows/:index", a.updateFormRow)
		apiGroup.DELETE("/sales-form/rows/:index", a.deleteFormRow)
		apiGroup.PUT("/sales-form/adjustments", a.setAdjustments)
		apiGroup.POST("/sales-form/submit", a.submitSalesForm)
		apiGroup.DELETE("/sales-form", a.cancelSalesForm)

		apiGroup.POST("/alerts/suggest-reorder", a.suggestReorder)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful
	// drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	a := newApp(api.NewClient(), suggest.NewSuggester())
	r := newRouter(a)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
