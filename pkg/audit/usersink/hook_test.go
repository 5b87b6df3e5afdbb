package usersink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/derepsz/strata/pkg/audit"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestNotifyMapsEventToActivityRecord(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	actor := uuid.New()
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	err := hook.Notify(context.Background(), audit.Event{
		ID:         "evt-1",
		Action:     "pipeline.executed",
		ActorID:    actor.String(),
		ObjectType: "operation",
		ObjectID:   "math.add",
		Channel:    "ops",
		Metadata:   map[string]any{"scope": "session"},
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Verb != "pipeline.executed" {
		t.Fatalf("unexpected verb: %q", record.Verb)
	}
	if record.ActorID != actor {
		t.Fatalf("expected parsed actor id, got %v", record.ActorID)
	}
	if record.ObjectType != "operation" || record.ObjectID != "math.add" {
		t.Fatalf("unexpected object fields: %+v", record)
	}
	if record.Channel != "ops" {
		t.Fatalf("unexpected channel: %q", record.Channel)
	}
	if !record.OccurredAt.Equal(at) {
		t.Fatalf("unexpected timestamp: %v", record.OccurredAt)
	}
	if record.Data["scope"] != "session" || record.Data["event_id"] != "evt-1" {
		t.Fatalf("unexpected data: %v", record.Data)
	}
}

func TestNotifyHandlesUnparsableIDs(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	err := hook.Notify(context.Background(), audit.Event{
		Action:     "pipeline.executed",
		ActorID:    "not-a-uuid",
		ObjectType: "operation",
		ObjectID:   "math.add",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].ActorID != uuid.Nil {
		t.Fatalf("expected nil uuid for unparsable actor, got %v", sink.records[0].ActorID)
	}
}

func TestNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	if err := hook.Notify(context.Background(), audit.Event{Action: "pipeline.executed"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected incomplete event skipped")
	}
}

func TestNotifyNilSink(t *testing.T) {
	hook := Hook{}
	if err := hook.Notify(context.Background(), audit.Event{Action: "x"}); err != nil {
		t.Fatalf("expected nil sink to be a no-op, got %v", err)
	}
}

func TestNotifyPropagatesSinkError(t *testing.T) {
	boom := errors.New("sink down")
	hook := Hook{Sink: &recordingSink{err: boom}}

	err := hook.Notify(context.Background(), audit.Event{
		Action:     "pipeline.executed",
		ObjectType: "operation",
		ObjectID:   "math.add",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
}
