package metrics

import (
	"math"
	"sync"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/prometheus/client_golang/prometheus"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/fungible"
)

// region Collector ////////////////////////////////////////////////////////////////////////////////////////////////////

// Collector exports the state transitions of a Ledger as prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	classes     prometheus.Gauge
	stores      prometheus.Gauge
	supply      *prometheus.GaugeVec
	deposits    *prometheus.CounterVec
	withdrawals *prometheus.CounterVec
	minted      *prometheus.CounterVec
	burned      *prometheus.CounterVec
	errors      prometheus.Counter
	rates       *transferRates

	ledger      *fungible.Ledger
	supplyMutex sync.Mutex
}

// New creates a Collector and registers its metrics in the given Registry.
func New(registry *prometheus.Registry, opts ...Option) (collector *Collector, err error) {
	options := newOptions(opts...)

	collector = &Collector{
		registry: registry,
		classes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fungible_classes",
			Help: "number of asset classes that were created.",
		}),
		stores: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fungible_stores",
			Help: "number of existing stores.",
		}),
		supply: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fungible_supply",
			Help: "tracked supply per asset class.",
		}, []string{"class"}),
		deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fungible_deposits_total",
			Help: "amount deposited into stores per asset class.",
		}, []string{"class"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fungible_withdrawals_total",
			Help: "amount withdrawn from stores per asset class.",
		}, []string{"class"}),
		minted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fungible_minted_total",
			Help: "amount minted per asset class.",
		}, []string{"class"}),
		burned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fungible_burned_total",
			Help: "amount burned per asset class.",
		}, []string{"class"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fungible_errors_total",
			Help: "number of internal errors reported by the ledger.",
		}),
	}

	if collector.rates, err = newTransferRates(options.rateInterval); err != nil {
		return nil, err
	}

	for _, collectorToRegister := range []prometheus.Collector{
		collector.classes,
		collector.stores,
		collector.supply,
		collector.deposits,
		collector.withdrawals,
		collector.minted,
		collector.burned,
		collector.errors,
		collector.rates.gauge,
	} {
		if err = registry.Register(collectorToRegister); err != nil {
			return nil, err
		}
	}

	return collector, nil
}

// Attach subscribes the Collector to the events of the Ledger and the Sink.
func (c *Collector) Attach(ledger *fungible.Ledger, sink *eventsink.Sink) {
	c.ledger = ledger

	ledger.Events.ClassCreated.Hook(event.NewClosure(func(*fungible.ClassCreatedEvent) {
		c.classes.Inc()
	}))
	ledger.Events.StoreCreated.Hook(event.NewClosure(func(*fungible.StoreCreatedEvent) {
		c.stores.Inc()
	}))
	ledger.Events.StoreRemoved.Hook(event.NewClosure(func(*fungible.StoreRemovedEvent) {
		c.stores.Dec()
	}))
	ledger.Events.Deposit.Hook(event.NewClosure(func(event *fungible.DepositEvent) {
		c.deposits.WithLabelValues(classLabel(event.Metadata)).Add(float64(event.Amount))
	}))
	ledger.Events.Withdraw.Hook(event.NewClosure(func(event *fungible.WithdrawEvent) {
		c.withdrawals.WithLabelValues(classLabel(event.Metadata)).Add(float64(event.Amount))
		c.rates.count(classLabel(event.Metadata))
	}))
	ledger.Events.Minted.Hook(event.NewClosure(func(event *fungible.SupplyChangedEvent) {
		c.minted.WithLabelValues(classLabel(event.Metadata)).Add(float64(event.Amount))
		c.updateSupply(event)
	}))
	ledger.Events.Burned.Hook(event.NewClosure(func(event *fungible.SupplyChangedEvent) {
		c.burned.WithLabelValues(classLabel(event.Metadata)).Add(float64(event.Amount))
		c.updateSupply(event)
	}))
	ledger.Events.Error.Hook(event.NewClosure(func(error) {
		c.errors.Inc()
	}))

	c.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "fungible_store_events_total",
		Help: "number of store events that were emitted through the event sink.",
	}, func() float64 {
		return float64(sink.EmittedCount())
	}))
}

// Close releases the resources of the Collector.
func (c *Collector) Close() error {
	return c.rates.close()
}

// updateSupply sets the supply gauge of tracked asset classes to the current supply of the Ledger. Events of
// concurrent supply changes can arrive out of order, so the value carried by the event is not used.
func (c *Collector) updateSupply(event *fungible.SupplyChangedEvent) {
	if !event.Tracked {
		return
	}

	c.supplyMutex.Lock()
	defer c.supplyMutex.Unlock()

	current, _, err := c.ledger.Supply(event.Metadata)
	if err != nil {
		return
	}
	c.supply.WithLabelValues(classLabel(event.Metadata)).Set(uint128ToFloat(current))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

// classLabel returns the label value that identifies the asset class.
func classLabel(metadata fungible.Metadata) string {
	return metadata.Address().Base58()
}

func uint128ToFloat(value uint128.Uint128) float64 {
	return float64(value.Hi)*math.Exp2(64) + float64(value.Lo)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
