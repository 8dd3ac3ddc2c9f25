package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/sushii-shop/storefront/internal/catalog"
	"github.com/sushii-shop/storefront/internal/config"
	"github.com/sushii-shop/storefront/internal/events"
	"github.com/sushii-shop/storefront/internal/httpserver"
	"github.com/sushii-shop/storefront/internal/service"
	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/pkg/logging"
	loggingmw "github.com/sushii-shop/storefront/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	st := store.New(cfg.DataDir)
	for _, name := range []string{service.OrderCollection, service.MessageCollection} {
		if err := st.Ensure(name); err != nil {
			log.Fatalf("store init %s: %v", name, err)
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer producer.Close()

	catalogSvc := &catalog.Service{Store: st}
	orderSvc := &service.OrderService{Store: st, Catalog: catalogSvc, Producer: producer}
	contactSvc := &service.ContactService{Store: st}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RateLimit),
		Burst:     cfg.RateBurst,
		ExpiresIn: 3 * time.Minute,
	})))

	httpserver.Register(e, &httpserver.Deps{
		HealthHandler:  &httpserver.HealthHTTP{StartedAt: time.Now()},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		ContactHandler: &httpserver.ContactHTTP{Svc: contactSvc},
		AdminHandler:   &httpserver.AdminHTTP{Orders: orderSvc, Contact: contactSvc},
		AdminJWTSecret: cfg.AdminJWTSecret,
	})

	if cfg.PublicDir != "" {
		e.Static("/", cfg.PublicDir)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	log.Println("storefront stopped")
}
