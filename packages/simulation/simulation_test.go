package simulation

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/primarystore"
)

func newTestSimulator(opts ...Option) *Simulator {
	ledger := fungible.New(objects.NewRegistry(), eventsink.New())

	return New(ledger, primarystore.New(ledger), append([]Option{WithLogger(logger.NewExampleLogger("simulation"))}, opts...)...)
}

func TestSimulator_Run(t *testing.T) {
	simulator := newTestSimulator(WithClasses(3), WithHolders(8), WithTransfers(2000), WithWorkers(8), WithConcurrentSupply(true))

	result, err := simulator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), result.Succeeded.Load()+result.Failed.Load())
	assert.Positive(t, result.Succeeded.Load())
	assert.Len(t, simulator.Classes(), 3)
	assert.Len(t, simulator.Holders(), 8)
}

func TestSimulator_MaxSupply(t *testing.T) {
	simulator := newTestSimulator(WithHolders(4), WithInitialBalance(100), WithMaxSupply(399))

	_, err := simulator.Run(context.Background())
	assert.True(t, errors.Is(err, fungible.ErrMaxSupplyExceeded))
}

func TestSimulator_Cancel(t *testing.T) {
	simulator := newTestSimulator(WithTransfers(100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := simulator.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, result)
	assert.Equal(t, uint64(0), result.Succeeded.Load()+result.Failed.Load())
}

func TestSimulator_InvalidOptions(t *testing.T) {
	for name, opts := range map[string][]Option{
		"no classes":         {WithClasses(0), WithTransfers(5)},
		"no holders":         {WithHolders(0), WithTransfers(5)},
		"no workers":         {WithWorkers(0), WithTransfers(5)},
		"negative transfers": {WithTransfers(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			simulator := newTestSimulator(opts...)

			result, err := simulator.Run(context.Background())
			assert.True(t, errors.Is(err, ErrInvalidOptions))
			assert.Nil(t, result)
			assert.Empty(t, simulator.Classes())
		})
	}
}
