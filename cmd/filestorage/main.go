// Command filestorage serves the file storage HTTP API.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/filestorage/internal/blob"
	"github.com/rise-and-shine/filestorage/internal/blob/local"
	"github.com/rise-and-shine/filestorage/internal/blob/miniostore"
	"github.com/rise-and-shine/filestorage/internal/config"
	"github.com/rise-and-shine/filestorage/internal/http/handler"
	"github.com/rise-and-shine/filestorage/internal/http/middleware"
	"github.com/rise-and-shine/filestorage/internal/http/server"
	"github.com/rise-and-shine/filestorage/internal/logger"
	"github.com/rise-and-shine/filestorage/internal/mask"
	"github.com/rise-and-shine/filestorage/internal/meta"
	"github.com/rise-and-shine/filestorage/internal/metadata"
	"github.com/rise-and-shine/filestorage/internal/pg"
	"github.com/rise-and-shine/filestorage/internal/storage"
	"github.com/rise-and-shine/filestorage/internal/tracing"
)

func main() {
	cfg := config.MustLoad[config.Config]("config")

	logger.SetGlobal(cfg.Logger)
	log := logger.Named("main")
	defer func() { _ = logger.Sync() }()

	log.With("config", mask.StructToOrdMap(cfg)).Info("loaded config")

	meta.SetLanguageMap(handler.Messages, handler.DefaultLanguage)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Errorx(err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.Named("main")

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.Service.Name, cfg.Service.Version)
	if err != nil {
		return errx.Wrap(err)
	}
	defer func() {
		if err := shutdownTracing(); err != nil {
			log.Warnx(err)
		}
	}()

	blobs, err := openBlobStore(ctx, cfg.Blob)
	if err != nil {
		return errx.Wrap(err)
	}

	records, closeRecords, err := openMetadataStore(ctx, cfg.Metadata)
	if err != nil {
		return errx.Wrap(err)
	}
	defer closeRecords()

	svc := storage.NewService(blobs, records, logger.Global())

	srv := server.NewHTTPServer(cfg.HTTPServer, []server.Middleware{
		middleware.NewRecoveryMW(logger.Global()),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.HTTPServer.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.Service.Name, cfg.Service.Version),
		middleware.NewLoggerMW(logger.Global()),
		middleware.NewErrorHandlerMW(cfg.HTTPServer.HideErrorDetails),
	})
	srv.RegisterRouter(handler.New(svc).Register)

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.HTTPServer.Address())
		serveErr <- srv.Start()
	}()

	select {
	case err = <-serveErr:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err = srv.Stop(shutdownCtx); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func openBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch cfg.Driver {
	case config.BlobMinio:
		s, err := miniostore.New(ctx, *cfg.Minio)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		return s, nil
	case config.BlobLocal:
		s, err := local.New(cfg.Local)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		return s, nil
	default:
		return nil, errx.New("unknown blob driver", errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}
}

// openMetadataStore returns the store and a func releasing its connections.
func openMetadataStore(ctx context.Context, cfg config.MetadataConfig) (storage.MetadataStore, func(), error) {
	switch cfg.Driver {
	case config.MetadataMemory:
		return metadata.NewMemStore(), func() {}, nil
	case config.MetadataPostgres:
	default:
		return nil, nil, errx.New("unknown metadata driver", errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}

	pool, err := pg.NewPool(ctx, *cfg.Postgres)
	if err != nil {
		return nil, nil, errx.Wrap(err)
	}

	if err = pg.WaitReady(ctx, pool, *cfg.Postgres, logger.Global()); err != nil {
		pool.Close()
		return nil, nil, errx.Wrap(err)
	}

	db := pg.NewBunDB(pool, *cfg.Postgres, logger.Global())
	if err = metadata.Bootstrap(ctx, db); err != nil {
		err = errors.Join(err, db.Close())
		pool.Close()
		return nil, nil, errx.Wrap(err)
	}

	return metadata.NewPgStore(db), func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
