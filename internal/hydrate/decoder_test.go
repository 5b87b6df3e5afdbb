package hydrate

import (
	"encoding/json"
	"errors"
	"testing"
)

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeBasic(t *testing.T) {
	decoder := NewDecoder[snapshot]()

	got, err := decoder.Decode(Context{Key: "k"}, map[string]any{
		"name":  "alpha",
		"count": 3,
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "alpha" || got.Count != 3 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestDecodeNilPayload(t *testing.T) {
	decoder := NewDecoder[snapshot]()
	if _, err := decoder.Decode(Context{Key: "k"}, nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
}

func TestPreHookRewritesPayload(t *testing.T) {
	decoder := NewDecoder(WithPreHook[snapshot](func(ctx Context, payload map[string]any) (map[string]any, error) {
		payload["name"] = ctx.Key
		return payload, nil
	}))

	got, err := decoder.Decode(Context{Key: "slot-7"}, map[string]any{"count": 1})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "slot-7" {
		t.Fatalf("expected pre-hook rewrite, got %q", got.Name)
	}
}

func TestPreHookDoesNotMutateCallerPayload(t *testing.T) {
	decoder := NewDecoder(WithPreHook[snapshot](func(_ Context, payload map[string]any) (map[string]any, error) {
		payload["name"] = "rewritten"
		return payload, nil
	}))

	original := map[string]any{"name": "original"}
	if _, err := decoder.Decode(Context{Key: "k"}, original); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if original["name"] != "original" {
		t.Fatalf("caller payload must stay untouched, got %v", original)
	}
}

func TestPostHookCanReject(t *testing.T) {
	boom := errors.New("bad value")
	decoder := NewDecoder(WithPostHook[snapshot](func(_ Context, value *snapshot) error {
		if value.Count < 0 {
			return boom
		}
		return nil
	}))

	if _, err := decoder.Decode(Context{Key: "k"}, map[string]any{"count": -1}); !errors.Is(err, boom) {
		t.Fatalf("expected post-hook error, got %v", err)
	}
	if _, err := decoder.Decode(Context{Key: "k"}, map[string]any{"count": 1}); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder(WithDisallowUnknownFields[snapshot]())
	if _, err := decoder.Decode(Context{Key: "k"}, map[string]any{"unknown": true}); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestUseNumber(t *testing.T) {
	type numeric struct {
		Value any `json:"value"`
	}

	decoder := NewDecoder(WithUseNumber[numeric]())
	got, err := decoder.Decode(Context{Key: "k"}, map[string]any{"value": 42})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got.Value.(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", got.Value)
	}
}
