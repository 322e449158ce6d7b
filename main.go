package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/iotaledger/fungible/packages/config"
	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/metrics"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/primarystore"
	"github.com/iotaledger/fungible/packages/simulation"
	"github.com/iotaledger/fungible/packages/webapi"
)

const (
	objectsRealm byte = iota
	ledgerRealm
)

type dependencies struct {
	dig.In

	Config    *config.Config
	Logger    *logger.Logger
	Ledger    *fungible.Ledger
	Collector *metrics.Collector
	Simulator *simulation.Simulator
	Server    *webapi.Server
}

func main() {
	container := dig.New()

	for _, constructor := range []interface{}{
		provideConfig,
		provideLogger,
		provideDatabase,
		provideRegistry,
		eventsink.New,
		provideLedger,
		providePrimaryStores,
		prometheus.NewRegistry,
		provideCollector,
		provideSimulator,
		webapi.New,
	} {
		if err := container.Provide(constructor); err != nil {
			panic(err)
		}
	}

	if err := container.Invoke(run); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(deps dependencies) (err error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps.Server.Start(deps.Config.GetString(config.CfgWebAPIBindAddress))
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if shutdownErr := deps.Server.Shutdown(shutdownCtx); shutdownErr != nil {
			deps.Logger.Errorw("failed to stop web API", "err", shutdownErr)
		}
		if closeErr := deps.Collector.Close(); closeErr != nil {
			deps.Logger.Errorw("failed to close metrics collector", "err", closeErr)
		}
		deps.Ledger.Shutdown()
		_ = deps.Logger.Sync()
	}()

	result, err := deps.Simulator.Run(ctx)
	if err != nil {
		return err
	}
	deps.Logger.Infow("simulation succeeded", "succeeded", result.Succeeded.Load(), "failed", result.Failed.Load(), "duration", result.Duration)

	deps.Logger.Info("serving web API until interrupted")
	<-ctx.Done()

	return nil
}

func provideConfig() (*config.Config, error) {
	cfg := config.New()

	return cfg, cfg.Load(os.Args[1:])
}

func provideLogger(cfg *config.Config) (*logger.Logger, error) {
	return cfg.NewLogger()
}

func provideDatabase() kvstore.KVStore {
	return mapdb.NewMapDB()
}

func provideRegistry(database kvstore.KVStore) (*objects.Registry, error) {
	objectsStore, err := database.WithRealm([]byte{objectsRealm})
	if err != nil {
		return nil, err
	}

	return objects.NewRegistry(objects.WithStore(objectsStore)), nil
}

func provideLedger(cfg *config.Config, log *logger.Logger, database kvstore.KVStore, registry *objects.Registry, sink *eventsink.Sink) (*fungible.Ledger, error) {
	ledgerStore, err := database.WithRealm([]byte{ledgerRealm})
	if err != nil {
		return nil, err
	}

	return fungible.New(registry, sink,
		fungible.WithStore(ledgerStore),
		fungible.WithLogger(log.Named("Ledger")),
		fungible.WithLeakDetection(cfg.GetBool(config.CfgLedgerLeakDetection)),
		fungible.WithParallelSupply(cfg.GetBool(config.CfgLedgerParallelSupply)),
		fungible.WithSupplyShards(cfg.GetInt(config.CfgLedgerSupplyShards)),
	), nil
}

func providePrimaryStores(ledger *fungible.Ledger, log *logger.Logger) *primarystore.PrimaryStores {
	return primarystore.New(ledger, primarystore.WithLogger(log.Named("PrimaryStores")))
}

func provideCollector(registry *prometheus.Registry, ledger *fungible.Ledger, sink *eventsink.Sink) (*metrics.Collector, error) {
	collector, err := metrics.New(registry)
	if err != nil {
		return nil, err
	}
	collector.Attach(ledger, sink)

	return collector, nil
}

func provideSimulator(cfg *config.Config, log *logger.Logger, ledger *fungible.Ledger, primaryStores *primarystore.PrimaryStores) *simulation.Simulator {
	return simulation.New(ledger, primaryStores,
		simulation.WithClasses(cfg.GetInt(config.CfgSimulationClasses)),
		simulation.WithHolders(cfg.GetInt(config.CfgSimulationHolders)),
		simulation.WithTransfers(cfg.GetInt(config.CfgSimulationTransfers)),
		simulation.WithWorkers(cfg.GetInt(config.CfgSimulationWorkers)),
		simulation.WithMaxSupply(cfg.GetUint64(config.CfgSimulationMaxSupply)),
		simulation.WithInitialBalance(cfg.GetUint64(config.CfgSimulationInitialBalance)),
		simulation.WithConcurrentSupply(cfg.GetBool(config.CfgSimulationConcurrentSupply)),
		simulation.WithSeed(cfg.GetInt64(config.CfgSimulationSeed)),
		simulation.WithLogger(log.Named("Simulation")),
	)
}
