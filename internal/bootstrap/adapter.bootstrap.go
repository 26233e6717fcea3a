package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/kgsd/fx-md-adapter/internal/config"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/kgsd/fx-md-adapter/internal/infrastructure"
	"github.com/kgsd/fx-md-adapter/internal/repository"
	"github.com/kgsd/fx-md-adapter/internal/service/fixadapter"
	"github.com/kgsd/fx-md-adapter/internal/util"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartAdapter(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initiator, closers, err := buildAdapter(ctx)
	util.ContinueOrFatal(err)

	err = initiator.Start()
	util.ContinueOrFatal(err)

	closers["fix initiator"] = func(ctx context.Context) error {
		initiator.Stop()
		return nil
	}

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, closers)

	<-wait
}

// RunAdapter builds and starts the initiator-side adapter and blocks until
// ctx is cancelled. Used by the triggering acceptor, which owns the process
// lifecycle.
func RunAdapter(ctx context.Context) error {
	initiator, closers, err := buildAdapter(ctx)
	if err != nil {
		return err
	}

	if err := initiator.Start(); err != nil {
		return fmt.Errorf("start fix initiator: %w", err)
	}

	<-ctx.Done()

	initiator.Stop()
	for name, closer := range closers {
		if err := closer(context.Background()); err != nil {
			logrus.Errorf("%s: clean up failed: %v", name, err)
		}
	}

	return nil
}

func buildAdapter(ctx context.Context) (*quickfix.Initiator, map[string]operation, error) {
	closers := make(map[string]operation)

	sink, closeSink, err := buildSink(ctx)
	if err != nil {
		return nil, nil, err
	}
	closers["sink"] = closeSink

	catalog := repository.LoadSwapPointsCatalog(config.Env.SwapPointsPath)

	var publisher *fixadapter.RowPublisher
	if config.Env.Sink.PublishRows {
		nc, js, err := infrastructure.NewJetstream()
		if err != nil {
			return nil, nil, err
		}
		closers["nats connection"] = func(ctx context.Context) error {
			return infrastructure.CloseJetstream(nc)
		}

		publisher = fixadapter.NewRowPublisher(js)
		if err := publisher.EnsureStream(); err != nil {
			return nil, nil, err
		}
	}

	registry := fixadapter.NewSubscriptionRegistry()
	builder := fixadapter.NewRequestBuilder(registry, fixadapter.NewSessionSender())
	app := fixadapter.NewApplication(
		config.Env.CurrencyPairs,
		catalog,
		registry,
		builder,
		fixadapter.NewSnapshotDecoder(),
		sink,
		publisher,
	)

	initiator, err := newInitiator(app, config.Env.Fix.SettingsPath)
	if err != nil {
		return nil, nil, err
	}

	return initiator, closers, nil
}

func buildSink(ctx context.Context) (entity.RowSink, operation, error) {
	switch config.Env.Sink.Driver {
	case "postgres":
		db, err := infrastructure.NewPostgresConnection(ctx, config.Env.Database["quotes"])
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuotePostgresRepository(db), func(ctx context.Context) error {
			return db.Close()
		}, nil
	case "clickhouse", "":
		conn, err := infrastructure.NewClickHouseConnection(ctx, config.Env.Sink.ClickHouseDSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuoteClickHouseRepository(conn), func(ctx context.Context) error {
			return conn.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink driver %q", config.Env.Sink.Driver)
	}
}

func newInitiator(app quickfix.Application, settingsPath string) (*quickfix.Initiator, error) {
	file, err := os.Open(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("open fix settings %s: %w", settingsPath, err)
	}
	defer file.Close()

	settings, err := quickfix.ParseSettings(file)
	if err != nil {
		return nil, fmt.Errorf("parse fix settings %s: %w", settingsPath, err)
	}

	return quickfix.NewInitiator(app, quickfix.NewMemoryStoreFactory(), settings, quickfix.NewScreenLogFactory())
}
