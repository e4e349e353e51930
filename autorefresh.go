package stockmatch

import (
	"context"
	"time"

	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

// AutoRefresher controls background rescans of the production inventory.
// While it runs, reconciliations use the latest scan instead of scanning
// on every call.
type AutoRefresher interface {
	// AutoRefreshOn scans once, then rescans on every interval.
	AutoRefreshOn() error

	// AutoRefreshOff stops background rescans.
	AutoRefreshOff() error
}

// AutoRefreshOn starts background refresh.
func (s *stockmatch) AutoRefreshOn() error {
	if s.options.tabSource == nil {
		return errors.NewConfigError("stockmatch", "auto-refresh needs a production spreadsheet", errors.ErrCredentialsRequired)
	}
	if err := s.AutoRefreshOff(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(s.options.autoRefreshInterval)
	stopCh := make(chan struct{})

	s.mu.Lock()
	s.refreshTicker = ticker
	s.refreshCancel = cancel
	s.stopCh = stopCh
	s.mu.Unlock()

	go func() {
		s.refresh(ctx)
		for {
			select {
			case <-ticker.C:
				s.refresh(ctx)
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}()
	return nil
}

func (s *stockmatch) refresh(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, constants.CommandTimeout)
	defer cancel()

	if _, err := s.ProductionInventory(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log(ctx).Error().Err(err).Msg("production inventory refresh failed")
	}
}

// AutoRefreshOff stops background refresh. It is safe to call repeatedly.
func (s *stockmatch) AutoRefreshOff() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshTicker != nil {
		s.refreshTicker.Stop()
		s.refreshTicker = nil
	}
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	return nil
}
