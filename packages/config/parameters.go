package config

import (
	"runtime"

	flag "github.com/spf13/pflag"
)

const (
	// CfgLoggerLevel defines the minimum level of log messages.
	CfgLoggerLevel = "logger.level"
	// CfgLoggerDisableCaller defines whether to omit the caller of log messages.
	CfgLoggerDisableCaller = "logger.disableCaller"

	// CfgLedgerLeakDetection defines whether dropped FungibleAssets are reported.
	CfgLedgerLeakDetection = "ledger.leakDetection"
	// CfgLedgerParallelSupply defines whether new asset classes use the sharded supply counter.
	CfgLedgerParallelSupply = "ledger.parallelSupply"
	// CfgLedgerSupplyShards defines the number of shards of the sharded supply counter.
	CfgLedgerSupplyShards = "ledger.supplyShards"

	// CfgSimulationClasses defines the number of simulated asset classes.
	CfgSimulationClasses = "simulation.classes"
	// CfgSimulationHolders defines the number of simulated holders.
	CfgSimulationHolders = "simulation.holders"
	// CfgSimulationTransfers defines the number of simulated transfers.
	CfgSimulationTransfers = "simulation.transfers"
	// CfgSimulationWorkers defines the size of the worker pool of the simulation.
	CfgSimulationWorkers = "simulation.workers"
	// CfgSimulationMaxSupply defines the maximum supply of the simulated asset classes.
	CfgSimulationMaxSupply = "simulation.maxSupply"
	// CfgSimulationInitialBalance defines the amount that every holder receives.
	CfgSimulationInitialBalance = "simulation.initialBalance"
	// CfgSimulationConcurrentSupply defines whether the simulated asset classes are upgraded to the sharded counter.
	CfgSimulationConcurrentSupply = "simulation.concurrentSupply"
	// CfgSimulationSeed defines the seed of the random transfers.
	CfgSimulationSeed = "simulation.seed"

	// CfgWebAPIBindAddress defines the bind address of the web API (metrics are served on /metrics).
	CfgWebAPIBindAddress = "webapi.bindAddress"
)

type parameter struct {
	name         string
	defaultValue interface{}
	usage        string
}

var parameters = []parameter{
	{CfgLoggerLevel, "info", "the minimum level of log messages"},
	{CfgLoggerDisableCaller, true, "omit the caller of log messages"},
	{CfgLedgerLeakDetection, true, "report fungible assets that are dropped without being consumed"},
	{CfgLedgerParallelSupply, false, "use the sharded supply counter for new asset classes"},
	{CfgLedgerSupplyShards, 16, "number of shards of the sharded supply counter"},
	{CfgSimulationClasses, 2, "number of simulated asset classes"},
	{CfgSimulationHolders, 16, "number of simulated holders"},
	{CfgSimulationTransfers, 10000, "number of simulated transfers"},
	{CfgSimulationWorkers, runtime.GOMAXPROCS(0), "size of the worker pool of the simulation"},
	{CfgSimulationMaxSupply, uint64(1_000_000_000), "maximum supply of the simulated asset classes"},
	{CfgSimulationInitialBalance, uint64(1000), "amount that every holder receives"},
	{CfgSimulationConcurrentSupply, false, "upgrade the simulated asset classes to the sharded supply counter"},
	{CfgSimulationSeed, int64(0), "seed of the random transfers"},
	{CfgWebAPIBindAddress, "127.0.0.1:8080", "the bind address of the web API"},
}

func (p parameter) register(flags *flag.FlagSet) {
	switch defaultValue := p.defaultValue.(type) {
	case string:
		flags.String(p.name, defaultValue, p.usage)
	case bool:
		flags.Bool(p.name, defaultValue, p.usage)
	case int:
		flags.Int(p.name, defaultValue, p.usage)
	case int64:
		flags.Int64(p.name, defaultValue, p.usage)
	case uint64:
		flags.Uint64(p.name, defaultValue, p.usage)
	default:
		panic("unsupported parameter type")
	}
}
