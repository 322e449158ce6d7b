package supply

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"lukechampine.com/uint128"
)

// region parallelCounter //////////////////////////////////////////////////////////////////////////////////////////////

// parallelCounter spreads its value over independently locked shards. Every shard owns a slice of the remaining
// headroom below the ceiling, so increases only need the lock of a single shard as long as that shard has enough
// headroom left. Whatever headroom is not handed out to a shard is kept in the pool.
//
// Invariant: sum(shard.value) + sum(shard.headroom) + pool == ceiling.
//
// Locks are always acquired in the order shards[0..n] and then the pool.
type parallelCounter struct {
	ceiling   uint128.Uint128
	shards    []*shard
	next      *atomic.Uint32
	pool      uint128.Uint128
	poolMutex sync.Mutex
}

type shard struct {
	value    uint128.Uint128
	headroom uint128.Uint128
	sync.Mutex
}

func newParallelCounter(ceiling, value uint128.Uint128, opts *options) *parallelCounter {
	p := &parallelCounter{
		ceiling: ceiling,
		shards:  make([]*shard, opts.shards),
		next:    atomic.NewUint32(0),
		pool:    ceiling.Sub(value),
	}
	for i := range p.shards {
		p.shards[i] = &shard{}
	}
	p.shards[0].value = value

	return p
}

func (p *parallelCounter) Read() (value uint128.Uint128) {
	p.lockShards()
	defer p.unlockShards()

	for _, s := range p.shards {
		value = value.Add(s.value)
	}

	return value
}

func (p *parallelCounter) Max() uint128.Uint128 {
	return p.ceiling
}

func (p *parallelCounter) Add(delta uint128.Uint128) error {
	if delta.IsZero() {
		return nil
	}

	s := p.shard()
	s.Lock()
	if s.headroom.Cmp(delta) >= 0 {
		s.headroom = s.headroom.Sub(delta)
		s.value = s.value.Add(delta)
		s.Unlock()

		return nil
	}

	p.poolMutex.Lock()
	if missing := delta.Sub(s.headroom); p.pool.Cmp(missing) >= 0 {
		granted := p.grant(missing)
		p.pool = p.pool.Sub(granted)
		p.poolMutex.Unlock()

		s.headroom = s.headroom.Add(granted).Sub(delta)
		s.value = s.value.Add(delta)
		s.Unlock()

		return nil
	}
	p.poolMutex.Unlock()
	s.Unlock()

	return p.addSlow(s, delta)
}

func (p *parallelCounter) Sub(delta uint128.Uint128) error {
	if delta.IsZero() {
		return nil
	}

	s := p.shard()
	s.Lock()
	if s.value.Cmp(delta) >= 0 {
		s.value = s.value.Sub(delta)
		s.headroom = s.headroom.Add(delta)
		s.Unlock()

		return nil
	}
	s.Unlock()

	return p.subSlow(delta)
}

func (p *parallelCounter) Parallelizable() bool {
	return true
}

// addSlow reclaims the headroom of all shards before it decides whether the increase fits below the ceiling.
func (p *parallelCounter) addSlow(target *shard, delta uint128.Uint128) error {
	p.lockShards()
	p.poolMutex.Lock()
	defer p.unlockShards()
	defer p.poolMutex.Unlock()

	for _, s := range p.shards {
		p.pool = p.pool.Add(s.headroom)
		s.headroom = uint128.Zero
	}

	if p.pool.Cmp(delta) < 0 {
		return errors.Errorf("failed to add %s to %s (max %s): %w", delta, p.ceiling.Sub(p.pool), p.ceiling, ErrMaxSupplyExceeded)
	}

	p.pool = p.pool.Sub(delta)
	target.value = target.value.Add(delta)

	return nil
}

// subSlow drains the requested amount from all shards if their combined value suffices.
func (p *parallelCounter) subSlow(delta uint128.Uint128) error {
	p.lockShards()
	p.poolMutex.Lock()
	defer p.unlockShards()
	defer p.poolMutex.Unlock()

	total := uint128.Zero
	for _, s := range p.shards {
		total = total.Add(s.value)
	}
	if total.Cmp(delta) < 0 {
		return errors.Errorf("failed to subtract %s from %s: %w", delta, total, ErrSupplyUnderflow)
	}

	remaining := delta
	for _, s := range p.shards {
		drained := minimum(s.value, remaining)
		s.value = s.value.Sub(drained)
		p.pool = p.pool.Add(drained)

		if remaining = remaining.Sub(drained); remaining.IsZero() {
			break
		}
	}

	return nil
}

// grant returns how much headroom a shard receives from the pool when it needs at least the given amount (the caller
// needs to hold the pool lock and ensure that the pool covers the amount).
func (p *parallelCounter) grant(needed uint128.Uint128) uint128.Uint128 {
	share := p.pool.Div64(uint64(2 * len(p.shards)))
	if share.Cmp(needed) < 0 {
		return needed
	}

	return share
}

// shard returns the next shard in round-robin order.
func (p *parallelCounter) shard() *shard {
	return p.shards[p.next.Inc()%uint32(len(p.shards))]
}

func (p *parallelCounter) lockShards() {
	for _, s := range p.shards {
		s.Lock()
	}
}

func (p *parallelCounter) unlockShards() {
	for i := len(p.shards) - 1; i >= 0; i-- {
		p.shards[i].Unlock()
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
