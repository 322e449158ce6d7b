package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/primarystore"
)

var (
	// ErrNotConserved is returned if the balances of an asset class do not add up to its supply after a run.
	ErrNotConserved = errors.New("value was not conserved")

	// ErrInvalidOptions is returned if the Simulator was configured with options that can not be run.
	ErrInvalidOptions = errors.New("invalid simulation options")
)

// region Simulator ////////////////////////////////////////////////////////////////////////////////////////////////////

// Simulator generates load on a Ledger: it creates asset classes and holders, funds the holders and then issues random
// transfers between their primary Stores on a worker pool.
type Simulator struct {
	ledger        *fungible.Ledger
	primaryStores *primarystore.PrimaryStores
	options       *options
	log           *logger.Logger

	classes []fungible.Metadata
	holders []objects.Address
}

// New returns a Simulator for the given Ledger.
func New(ledger *fungible.Ledger, primaryStores *primarystore.PrimaryStores, opts ...Option) *Simulator {
	options := newOptions(opts...)

	return &Simulator{
		ledger:        ledger,
		primaryStores: primaryStores,
		options:       options,
		log:           options.log,
	}
}

// Run sets up the asset classes and holders, executes the configured number of transfers and verifies that every
// asset class still adds up to its supply.
func (s *Simulator) Run(ctx context.Context) (result *Result, err error) {
	if err = s.options.validate(); err != nil {
		return nil, err
	}
	if err = s.setup(); err != nil {
		return nil, errors.Errorf("failed to set up simulation: %w", err)
	}

	pool, err := ants.NewPool(s.options.workers, ants.WithNonblocking(false), ants.WithPanicHandler(func(recovered interface{}) {
		s.log.Errorw("transfer panicked", "err", recovered)
	}))
	if err != nil {
		return nil, errors.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	result = newResult()
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < s.options.transfers; i++ {
		if ctx.Err() != nil {
			break
		}

		seed := s.options.seed + int64(i)
		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()

			s.transfer(rand.New(rand.NewSource(seed)), result)
		}); err != nil {
			wg.Done()
			return nil, errors.Errorf("failed to submit transfer: %w", err)
		}
	}
	wg.Wait()

	result.Duration = time.Since(start)
	s.log.Infow("simulation finished", "succeeded", result.Succeeded.Load(), "failed", result.Failed.Load(), "duration", result.Duration)

	if err = s.verify(); err != nil {
		return result, err
	}

	return result, ctx.Err()
}

// Holders returns the holders that take part in the simulation.
func (s *Simulator) Holders() []objects.Address {
	return s.holders
}

// Classes returns the asset classes that take part in the simulation.
func (s *Simulator) Classes() []fungible.Metadata {
	return s.classes
}

// setup creates the asset classes and funds every holder.
func (s *Simulator) setup() (err error) {
	var issuer objects.Address
	if err = issuer.FromRandomness(); err != nil {
		return err
	}
	issuer.RegisterAlias("issuer")

	s.holders = make([]objects.Address, s.options.holders)
	for i := range s.holders {
		if err = s.holders[i].FromRandomness(); err != nil {
			return err
		}
		s.holders[i].RegisterAlias(fmt.Sprintf("holder%d", i))
	}

	s.classes = make([]fungible.Metadata, s.options.classes)
	for i := range s.classes {
		constructorRef, err := s.ledger.Objects().CreateObject(issuer)
		if err != nil {
			return err
		}
		constructorRef.Address().RegisterAlias(fmt.Sprintf("class%d", i))

		metadata, mintRef, _, _, err := s.ledger.CreateClass(constructorRef, fungible.Capped(uint128.From64(s.options.maxSupply)), fmt.Sprintf("Simulated %d", i), fmt.Sprintf("SIM%d", i), 6)
		if err != nil {
			return err
		}
		if s.options.concurrentSupply {
			if err = s.ledger.UpgradeToConcurrent(mintRef); err != nil {
				return err
			}
		}

		for _, holder := range s.holders {
			if err = s.primaryStores.MintTo(mintRef, holder, s.options.initialBalance); err != nil {
				return err
			}
		}

		s.classes[i] = metadata
	}

	return nil
}

// transfer moves a random amount of a random asset class between two random holders.
func (s *Simulator) transfer(random *rand.Rand, result *Result) {
	metadata := s.classes[random.Intn(len(s.classes))]
	from := s.holders[random.Intn(len(s.holders))]
	to := s.holders[random.Intn(len(s.holders))]
	amount := uint64(random.Int63n(int64(s.options.initialBalance/10) + 1))

	if err := s.primaryStores.Transfer(objects.NewSigner(from), metadata, to, amount); err != nil {
		s.log.Debugw("transfer failed", "from", from, "to", to, "class", metadata, "amount", amount, "err", err)
		result.Failed.Inc()

		return
	}

	result.Succeeded.Inc()
}

// verify checks that the balances of every asset class add up to its supply.
func (s *Simulator) verify() (err error) {
	for _, metadata := range s.classes {
		sum := uint128.Zero
		for _, holder := range s.holders {
			sum = sum.Add64(s.primaryStores.Balance(holder, metadata))
		}

		current, _, err := s.ledger.Supply(metadata)
		if err != nil {
			return err
		}
		if sum != current {
			return errors.Errorf("balances of %s add up to %s instead of %s: %w", metadata, sum, current, ErrNotConserved)
		}
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Result ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Result contains the statistics of a simulation run.
type Result struct {
	Succeeded *atomic.Uint64
	Failed    *atomic.Uint64
	Duration  time.Duration
}

func newResult() *Result {
	return &Result{
		Succeeded: atomic.NewUint64(0),
		Failed:    atomic.NewUint64(0),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
