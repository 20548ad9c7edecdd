package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	config "github.com/Keoroanthony/go-food-ordering/configs"
	"github.com/Keoroanthony/go-food-ordering/internal/auth"
	"github.com/Keoroanthony/go-food-ordering/internal/cart"
	"github.com/Keoroanthony/go-food-ordering/internal/catalog"
	"github.com/Keoroanthony/go-food-ordering/internal/db"
	"github.com/Keoroanthony/go-food-ordering/internal/events"
	"github.com/Keoroanthony/go-food-ordering/internal/handlers"
	"github.com/Keoroanthony/go-food-ordering/internal/notifier"
	"github.com/Keoroanthony/go-food-ordering/internal/orders"
	"github.com/Keoroanthony/go-food-ordering/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Telemetry init error: %v", err)
	}
	defer shutdownTracing(context.Background())

	gdb, err := db.Open(cfg.Postgres)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}
	records := db.NewClient(gdb, cfg.BackendTimeout)

	oidcProvider, err := auth.NewOIDC(ctx, cfg.OIDC)
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		log.Fatalf("Events init error: %v", err)
	}
	defer publisher.Close()

	notify := buildNotifier(ctx, cfg)

	h := &handlers.Handler{
		Records:   records,
		Catalog:   catalog.New(records),
		Carts:     cartStorage(cfg.Redis),
		Submitter: orders.NewSubmitter(records, notify, publisher),
		Tracker:   orders.NewTracker(records, notify, publisher),
		Gateway:   auth.NewGateway(records),
		OIDC:      oidcProvider,
		State:     auth.NewStateSigner(cfg.StateSecret, 10*time.Minute),
	}

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions(auth.SessionName, store))

	h.Register(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: telemetry.Middleware(cfg.Telemetry.ServiceName, r),
	}

	go func() {
		log.Printf("Storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// cartStorage keeps carts in Redis when an address is configured and in memory otherwise.
func cartStorage(cfg config.RedisConfig) cart.Storage {
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR not set, carts are kept in memory")
		return cart.NewMemoryStorage()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return cart.NewRedisStorage(client, cfg.KeyPrefix, cfg.CartTTL)
}

func buildNotifier(ctx context.Context, cfg *config.Config) notifier.Notifier {
	var all notifier.Multi

	if cfg.Email.SenderEmail != "" {
		email, err := notifier.NewEmailNotifier(ctx, cfg.Email)
		if err != nil {
			log.Printf("Email notifications disabled: %v", err)
		} else {
			all = append(all, email)
		}
	}
	if cfg.SMS.APIKey != "" {
		all = append(all, notifier.NewSMSNotifier(cfg.SMS, &http.Client{Timeout: 10 * time.Second}))
	}

	return all
}
