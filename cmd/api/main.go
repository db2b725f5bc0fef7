package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paintland/internal/config"
	"paintland/internal/db"
	"paintland/internal/httpserver"
	cartrepo "paintland/internal/repository/cart"
	catalogrepo "paintland/internal/repository/catalog"
	"paintland/internal/repository/kv"
	cartsvc "paintland/internal/service/cart"
	catalogsvc "paintland/internal/service/catalog"
	devicesvc "paintland/internal/service/device"
	ordersvc "paintland/internal/service/order"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store, closeStore, err := openStore(ctx, cfg, dbpool, logger)
	if err != nil {
		logger.Fatalf("open %s storage: %v", cfg.StorageDriver, err)
	}
	defer closeStore()

	var orderOpts []ordersvc.Option
	if cfg.OrderTemplatePath != "" {
		tmpl, err := ordersvc.LoadTemplate(cfg.OrderTemplatePath)
		if err != nil {
			logger.Fatalf("load order template: %v", err)
		}
		orderOpts = append(orderOpts, ordersvc.WithTemplate(tmpl))
	}
	if cfg.WhatsAppPhone == "" {
		logger.Printf("WHATSAPP_PHONE not set, order links will have no recipient")
	}

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(catalogRepo)
	carts := cartsvc.NewRegistry(func(namespace string) cartsvc.Store {
		return cartrepo.NewStore(store, namespace, logger)
	}, logger, cartsvc.WithCapacity(cfg.CartCacheSize))
	orderService := ordersvc.New(cfg.WhatsAppPhone, logger, orderOpts...)
	deviceService := devicesvc.New(store, logger, devicesvc.WithTTL(cfg.DeviceTokenTTL))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:     catalogService,
		Carts:          carts,
		OrderSvc:       orderService,
		DeviceSvc:      deviceService,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s storage=%s", cfg.HTTPAddr, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// openStore returns the kv backend holding carts and device tokens.
func openStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger *log.Logger) (kv.Repository, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return kv.NewMemory(), func() {}, nil
	case config.StorageSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := kv.NewSQLite(ctx, sqlDB, logger)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return repo, closer(sqlDB, logger), nil
	default:
		return kv.NewPostgres(pool, logger), func() {}, nil
	}
}

func closer(sqlDB *sql.DB, logger *log.Logger) func() {
	return func() {
		if err := sqlDB.Close(); err != nil {
			logger.Printf("close sqlite: %v", err)
		}
	}
}
