package metrics

import (
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
	"github.com/paulbellamy/ratecounter"
	"github.com/prometheus/client_golang/prometheus"
)

// transferRates keeps a RateCounter per asset class. Counters of classes without recent transfers expire and their
// gauge is removed.
type transferRates struct {
	gauge    *prometheus.GaugeVec
	counters *ttlcache.Cache
}

func newTransferRates(interval time.Duration) (rates *transferRates, err error) {
	rates = &transferRates{
		gauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fungible_transfers_per_interval",
			Help: "number of withdrawals per asset class within the rate interval.",
		}, []string{"class"}),
		counters: ttlcache.NewCache(),
	}

	rates.counters.SetLoaderFunction(func(_ string) (interface{}, time.Duration, error) {
		return ratecounter.NewRateCounter(interval), ttlcache.ItemExpireWithGlobalTTL, nil
	})
	rates.counters.SetExpirationCallback(func(class string, _ interface{}) {
		rates.gauge.DeleteLabelValues(class)
	})
	if err = rates.counters.SetTTL(10 * interval); err != nil {
		return nil, errors.WithStack(err)
	}

	return rates, nil
}

// count registers a transfer of the given asset class.
func (t *transferRates) count(class string) {
	counterI, err := t.counters.Get(class)
	if err != nil {
		return
	}

	counter := counterI.(*ratecounter.RateCounter)
	counter.Incr(1)
	t.gauge.WithLabelValues(class).Set(float64(counter.Rate()))
}

func (t *transferRates) close() error {
	return t.counters.Close()
}
