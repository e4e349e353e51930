package stockmatch

import (
	"sync"

	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Hook function types.
type (
	// ReconciledHook is called after a reconciliation completes.
	ReconciledHook func(rec *Reconciliation)

	// ProductionRefreshedHook is called after the production inventory is
	// scanned.
	ProductionRefreshedHook func(report *sheets.Report)
)

type hooks struct {
	mu                    sync.RWMutex
	onReconciled          []ReconciledHook
	onProductionRefreshed []ProductionRefreshedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnReconciled registers fn.
func (s *stockmatch) OnReconciled(fn ReconciledHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onReconciled = append(s.hooks.onReconciled, fn)
}

// OnProductionRefreshed registers fn.
func (s *stockmatch) OnProductionRefreshed(fn ProductionRefreshedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onProductionRefreshed = append(s.hooks.onProductionRefreshed, fn)
}

func (h *hooks) triggerReconciled(rec *Reconciliation) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReconciled {
		fn(rec)
	}
}

func (h *hooks) triggerProductionRefreshed(report *sheets.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onProductionRefreshed {
		fn(report)
	}
}
