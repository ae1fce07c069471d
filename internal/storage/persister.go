package storage

import (
	"artfolio/internal/providers"
	"artfolio/internal/structures"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

const defaultQueueSize = 256

type pendingValue struct {
	value   []byte
	deleted bool
	seq     uint64
}

type writeBatch struct {
	seq  uint64
	muts []Mutation
	done chan struct{}
}

// Persister applies scheduled writes on a single worker goroutine, in the
// order they were scheduled. Scheduled values are visible to Get until the
// worker has written them. Values of a failed batch stay visible and are
// retried before the next batch and on Flush, unless a later write to the
// same key supersedes them.
type Persister struct {
	gateway KeyValueGateway
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu        sync.Mutex
	cond      *sync.Cond
	batches   []writeBatch
	inFlight  int
	pending   map[string]pendingValue
	retry     map[string]uint64
	seq       uint64
	queueSize int
	closed    bool
	wg        sync.WaitGroup
}

func NewPersister(conf *structures.Config, gateway KeyValueGateway, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Persister, func()) {
	queueSize := conf.Storage.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Persister{
		gateway:   gateway,
		logger:    logger,
		metrics:   metrics,
		pending:   make(map[string]pendingValue),
		retry:     make(map[string]uint64),
		queueSize: queueSize,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(1)
	go p.run()

	return p, p.Close
}

// Schedule enqueues muts as one atomic batch and returns without waiting
// for the write. It blocks only while the queue is full.
func (p *Persister) Schedule(muts ...Mutation) {
	if len(muts) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.batches) >= p.queueSize && !p.closed {
		p.cond.Wait()
	}
	if p.closed {
		p.logger.Errorf(providers.TypeStore, "Persister closed, dropping write of %s", batchKeys(muts))
		return
	}

	p.seq++
	for _, m := range muts {
		p.pending[m.Key] = pendingValue{value: m.Value, deleted: m.Delete, seq: p.seq}
	}
	p.batches = append(p.batches, writeBatch{seq: p.seq, muts: muts})
	p.cond.Broadcast()
}

// Get reads through the not-yet-written values before falling back to the gateway.
func (p *Persister) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	pv, ok := p.pending[key]
	p.mu.Unlock()
	if ok {
		if pv.deleted {
			return nil, false, nil
		}
		return append([]byte(nil), pv.value...), true, nil
	}
	return p.gateway.Get(ctx, key)
}

// Flush waits until every batch scheduled before the call has been written.
func (p *Persister) Flush(ctx context.Context) error {
	done := make(chan struct{})
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.batches = append(p.batches, writeBatch{done: done})
	p.cond.Broadcast()
	p.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of batches not yet written. Failed writes
// waiting for a retry count as one batch.
func (p *Persister) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.inFlight
	if len(p.retry) > 0 {
		n++
	}
	for _, b := range p.batches {
		if b.done == nil {
			n++
		}
	}
	return n
}

// Close writes everything still queued and stops the worker.
func (p *Persister) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Persister) run() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.batches) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.batches) == 0 {
			p.mu.Unlock()
			p.retryFailed()
			return
		}
		b := p.batches[0]
		p.batches = p.batches[1:]
		if b.done == nil {
			p.inFlight++
		}
		p.cond.Broadcast()
		p.mu.Unlock()

		p.retryFailed()

		if b.done != nil {
			close(b.done)
			continue
		}

		err := p.write(b.muts)

		p.mu.Lock()
		p.inFlight--
		for _, m := range b.muts {
			pv, ok := p.pending[m.Key]
			if !ok || pv.seq != b.seq {
				continue
			}
			if err != nil {
				p.retry[m.Key] = b.seq
			} else {
				delete(p.pending, m.Key)
			}
		}
		p.mu.Unlock()
	}
}

// retryFailed rewrites, as one batch, the failed values no later write
// has replaced.
func (p *Persister) retryFailed() {
	p.mu.Lock()
	if len(p.retry) == 0 {
		p.mu.Unlock()
		return
	}
	muts := make([]Mutation, 0, len(p.retry))
	seqs := make(map[string]uint64, len(p.retry))
	for key, seq := range p.retry {
		pv, ok := p.pending[key]
		if !ok || pv.seq != seq {
			delete(p.retry, key)
			continue
		}
		muts = append(muts, Mutation{Key: key, Value: pv.value, Delete: pv.deleted})
		seqs[key] = seq
	}
	p.mu.Unlock()
	if len(muts) == 0 {
		return
	}
	slices.SortFunc(muts, func(a, b Mutation) int { return strings.Compare(a.Key, b.Key) })

	if err := p.write(muts); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for key, seq := range seqs {
		if p.retry[key] == seq {
			delete(p.retry, key)
		}
		if pv, ok := p.pending[key]; ok && pv.seq == seq {
			delete(p.pending, key)
		}
	}
}

func (p *Persister) write(muts []Mutation) error {
	start := time.Now()
	err := p.gateway.Apply(context.Background(), muts)
	p.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		p.metrics.IncPersistenceFailures()
		p.logger.Errorf(providers.TypeStore, "Error while persisting %s: %s", batchKeys(muts), err)
		return err
	}
	p.logger.Debugf(providers.TypeStore, "Persisted %s", batchKeys(muts))
	return nil
}

func batchKeys(muts []Mutation) string {
	keys := make([]string, len(muts))
	for i, m := range muts {
		keys[i] = m.Key
	}
	return strings.Join(keys, ",")
}
