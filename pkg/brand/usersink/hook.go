package usersink

import (
	"context"
	"time"

	"github.com/goliatone/go-docstate/pkg/brand"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts brand events to a go-users ActivitySink so brand changes land
// in the same audit trail as the rest of a host application's activity.
// ActorID identifies the (single) local user on every record.
type Hook struct {
	Sink    usertypes.ActivitySink
	ActorID uuid.UUID
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event brand.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := brand.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		ActorID:    h.ActorID,
		UserID:     h.ActorID,
		Verb:       normalized.Verb,
		ObjectType: "brand." + normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       cloneMap(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}

	return h.Sink.Log(ctx, record)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
