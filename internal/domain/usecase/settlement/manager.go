package settlement

import (
	"context"
	"sync"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// AccountSerializer runs settlements for one account strictly in order. Two
// concurrent wagers from the same account are the main double-spend hazard;
// queueing them behind a per-account worker makes committed settlements
// linearizable. The wallet compare-and-swap underneath still protects against
// writers outside this process.
type AccountSerializer struct {
	logger coreport.Logger

	// Account-based queues for strict ordering
	accountQueues  sync.Map // map[string]chan *settleRequest
	queueWaitGroup sync.WaitGroup

	// Function that actually settles
	settle SettleFunc
}

// SettleFunc is the function signature for executing one settlement
type SettleFunc func(ctx context.Context, req *PlaceBetRequest) (*Result, error)

// settleRequest is a queued settlement
type settleRequest struct {
	ctx        context.Context
	req        *PlaceBetRequest
	resultChan chan *settleResult
}

// settleResult carries the outcome back to the enqueuer
type settleResult struct {
	result *Result
	err    error
}

// NewAccountSerializer creates a serializer backed by the given settle function
func NewAccountSerializer(logger coreport.Logger, settle SettleFunc) *AccountSerializer {
	if settle == nil {
		panic("settle function cannot be nil")
	}
	return &AccountSerializer{
		logger: logger,
		settle: settle,
	}
}

// Enqueue adds a settlement to the account's queue and waits for its result
func (s *AccountSerializer) Enqueue(ctx context.Context, req *PlaceBetRequest) (*Result, error) {
	s.logger.Debug("Enqueuing settlement", map[string]any{
		"account_id": req.AccountID,
		"token":      req.Token,
	})

	resultChan := make(chan *settleResult, 1)

	var queue chan *settleRequest
	queueIface, loaded := s.accountQueues.LoadOrStore(req.AccountID, make(chan *settleRequest, 100))
	queueCh, ok := queueIface.(chan *settleRequest)
	if !ok {
		s.logger.Error("Failed to type assert queue channel", nil)
		return nil, errs.ErrInternalServer
	}
	queue = queueCh

	if !loaded {
		s.queueWaitGroup.Add(1)
		go s.processAccountQueue(req.AccountID, queue)
	}

	select {
	case queue <- &settleRequest{ctx: ctx, req: req, resultChan: resultChan}:
	case <-ctx.Done():
		s.logger.Warn("Context canceled while enqueueing settlement", map[string]any{
			"account_id": req.AccountID,
			"token":      req.Token,
		})
		return nil, ctx.Err()
	}

	select {
	case result := <-resultChan:
		return result.result, result.err
	case <-ctx.Done():
		// The queued settlement may still commit; committed work is never
		// rolled back on navigation away.
		s.logger.Warn("Context canceled while waiting for settlement result", map[string]any{
			"account_id": req.AccountID,
			"token":      req.Token,
		})
		return nil, ctx.Err()
	}
}

// processAccountQueue is the worker goroutine for one account's queue
func (s *AccountSerializer) processAccountQueue(accountID string, queue chan *settleRequest) {
	defer s.queueWaitGroup.Done()

	s.logger.Info("Settlement queue worker started", map[string]any{
		"account_id": accountID,
	})

	for item := range queue {
		result, err := s.settle(item.ctx, item.req)
		item.resultChan <- &settleResult{result: result, err: err}
		close(item.resultChan)
	}

	s.logger.Info("Settlement queue worker stopped", map[string]any{
		"account_id": accountID,
	})
}

// Shutdown stops all worker goroutines cleanly
func (s *AccountSerializer) Shutdown() {
	s.logger.Info("Shutting down account serializer", nil)

	s.accountQueues.Range(func(_, queueIface interface{}) bool {
		if queue, ok := queueIface.(chan *settleRequest); ok {
			close(queue)
		}
		return true
	})

	s.queueWaitGroup.Wait()
	s.logger.Info("Account serializer shut down", nil)
}
