package audit

import (
	"context"
	"time"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/core/logger"
)

// Observer appends every creation event to a Store.
type Observer struct {
	store   Store
	log     logger.Logger
	timeout time.Duration
}

// NewObserver returns an Observer writing to store. Append failures are
// reported to log.
func NewObserver(store Store, log logger.Logger) *Observer {
	return &Observer{store: store, log: log, timeout: 2 * time.Second}
}

func (o *Observer) Observe(ev factory.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()
	if err := o.store.Append(ctx, NewRecord(ev)); err != nil && o.log != nil {
		o.log.Errorf("audit append: %v", err)
	}
}
