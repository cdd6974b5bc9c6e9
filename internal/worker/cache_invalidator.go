package worker

import (
	"context"

	"github.com/spec-kit/taskboard/internal/events"
	"github.com/spec-kit/taskboard/internal/service"
)

// RegisterCacheInvalidator subscribes the lookup cache to task mutation
// events so stale distinct values are dropped as soon as a task changes.
func RegisterCacheInvalidator(dispatcher events.Dispatcher, lookups *service.LookupService) {
	if dispatcher == nil || lookups == nil {
		return
	}

	handler := func(ctx context.Context, event events.Event) error {
		lookups.Invalidate(ctx, event.Creator)
		return nil
	}

	dispatcher.Subscribe(events.EventTaskSaved, handler)
	dispatcher.Subscribe(events.EventTaskDeleted, handler)
}
