package audit

import (
	"context"
	"testing"
)

func TestEmitterAppliesDefaultChannel(t *testing.T) {
	hook := &CaptureHook{}
	emitter := NewEmitter(Hooks{hook}, Config{Enabled: true})

	err := emitter.Emit(context.Background(), Event{
		Action:     "pipeline.executed",
		ObjectType: "operation",
		ObjectID:   "math.add",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	captured := hook.Captured()
	if len(captured) != 1 {
		t.Fatalf("expected one event, got %d", len(captured))
	}
	if captured[0].Channel != "strata" {
		t.Fatalf("expected default channel, got %q", captured[0].Channel)
	}
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &CaptureHook{}
	emitter := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "ops"})

	err := emitter.Emit(context.Background(), Event{
		Action:     "pipeline.executed",
		ObjectType: "operation",
		ObjectID:   "math.add",
		Channel:    "override",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := hook.Captured()[0].Channel; got != "override" {
		t.Fatalf("expected explicit channel kept, got %q", got)
	}
}

func TestEmitterDisabled(t *testing.T) {
	hook := &CaptureHook{}

	emitter := NewEmitter(Hooks{hook}, Config{Enabled: false})
	if emitter.Enabled() {
		t.Fatalf("expected disabled emitter")
	}
	if err := emitter.Emit(context.Background(), Event{Action: "x"}); err != nil {
		t.Fatalf("emit on disabled emitter: %v", err)
	}
	if len(hook.Captured()) != 0 {
		t.Fatalf("disabled emitter must not notify hooks")
	}

	// Enabled config with no hooks still resolves to disabled.
	if NewEmitter(nil, Config{Enabled: true}).Enabled() {
		t.Fatalf("expected emitter without hooks to be disabled")
	}
	if NewEmitter(Hooks{nil}, Config{Enabled: true}).Enabled() {
		t.Fatalf("expected emitter with only nil hooks to be disabled")
	}
}

func TestStateObserverEmitsStateChanged(t *testing.T) {
	hook := &CaptureHook{}
	emitter := NewEmitter(Hooks{hook}, Config{Enabled: true})

	observer := StateObserver[int](emitter, "session", EventInput{Scope: "session"})
	observer(42)

	captured := hook.Captured()
	if len(captured) != 1 {
		t.Fatalf("expected one event, got %d", len(captured))
	}
	event := captured[0]
	if event.Action != "state.changed" || event.ObjectID != "session" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["new_value"] != 42 {
		t.Fatalf("unexpected metadata: %v", event.Metadata)
	}
}
