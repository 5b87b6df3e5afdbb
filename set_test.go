package strata

import (
	"encoding/json"
	"testing"
)

type flagLayer struct {
	name    string
	enabled bool
}

func (l flagLayer) Name() string  { return l.name }
func (l flagLayer) Enabled() bool { return l.enabled }

// plainLayer carries no enablement flag and defaults to enabled.
type plainLayer struct {
	name string
}

func (l plainLayer) Name() string { return l.name }

func TestSetFiltersPreservingOrder(t *testing.T) {
	set := NewSet([]Layer{
		flagLayer{name: "a", enabled: true},
		flagLayer{name: "b", enabled: false},
		plainLayer{name: "c"},
		flagLayer{name: "d", enabled: true},
	})

	wantNames := []string{"a", "c", "d"}
	gotNames := set.Names()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("expected names %v, got %v", wantNames, gotNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("expected names %v, got %v", wantNames, gotNames)
		}
	}

	if set.EnabledCount() != 3 {
		t.Fatalf("expected 3 enabled layers, got %d", set.EnabledCount())
	}
	if !set.Any() {
		t.Fatalf("expected Any to report true")
	}
	if len(set.Declared()) != 4 {
		t.Fatalf("expected 4 declared layers, got %d", len(set.Declared()))
	}

	wantStatus := []bool{true, false, true, true}
	gotStatus := set.Status()
	for i := range wantStatus {
		if gotStatus[i] != wantStatus[i] {
			t.Fatalf("expected status %v, got %v", wantStatus, gotStatus)
		}
	}
}

func TestSetAllDisabled(t *testing.T) {
	set := NewSet([]Layer{
		flagLayer{name: "a"},
		flagLayer{name: "b"},
	})

	if set.Any() {
		t.Fatalf("expected no enabled layers")
	}
	if set.Layers() != nil {
		t.Fatalf("expected nil enabled slice, got %v", set.Names())
	}
	if len(set.Declared()) != 2 {
		t.Fatalf("expected declared layers to survive filtering")
	}
}

func TestSetDropsNilLayers(t *testing.T) {
	set := NewSet([]Layer{nil, plainLayer{name: "a"}, nil})
	if set.EnabledCount() != 1 || len(set.Declared()) != 1 {
		t.Fatalf("expected nil layers dropped, got %d declared", len(set.Declared()))
	}
}

func TestEnablementOverridesLayerFlag(t *testing.T) {
	layers := []Layer{
		flagLayer{name: "a", enabled: true},
		flagLayer{name: "b", enabled: false},
		plainLayer{name: "c"},
	}
	set := NewSet(layers, WithEnablement(Enablement{
		"a": false,
		"b": true,
	}))

	wantNames := []string{"b", "c"}
	gotNames := set.Names()
	if len(gotNames) != len(wantNames) || gotNames[0] != "b" || gotNames[1] != "c" {
		t.Fatalf("expected names %v, got %v", wantNames, gotNames)
	}
}

func TestFilterHelpers(t *testing.T) {
	layers := []Layer{
		flagLayer{name: "a", enabled: true},
		flagLayer{name: "b", enabled: false},
	}

	if got := FilterLayers(layers); len(got) != 1 || got[0].Name() != "a" {
		t.Fatalf("unexpected filtered layers: %v", got)
	}
	if got := CountEnabled(layers); got != 1 {
		t.Fatalf("expected 1 enabled, got %d", got)
	}
	if !AnyEnabled(layers) {
		t.Fatalf("expected AnyEnabled true")
	}
	if AnyEnabled([]Layer{flagLayer{name: "a"}}) {
		t.Fatalf("expected AnyEnabled false for disabled layers")
	}
}

func TestSetDescribe(t *testing.T) {
	set := NewSet([]Layer{
		flagLayer{name: "a", enabled: true},
		flagLayer{name: "b", enabled: false},
	})

	doc := set.Describe()
	if doc.EnabledCount != 1 {
		t.Fatalf("expected enabled count 1, got %d", doc.EnabledCount)
	}
	if len(doc.Layers) != 2 {
		t.Fatalf("expected 2 layer entries, got %d", len(doc.Layers))
	}
	if doc.Layers[0] != (LayerStatus{Name: "a", Enabled: true}) {
		t.Fatalf("unexpected first entry: %+v", doc.Layers[0])
	}
	if doc.Layers[1] != (LayerStatus{Name: "b", Enabled: false}) {
		t.Fatalf("unexpected second entry: %+v", doc.Layers[1])
	}

	payload, err := doc.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded SetDocument
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.EnabledCount != 1 || len(decoded.Layers) != 2 {
		t.Fatalf("unexpected round-trip document: %+v", decoded)
	}
}
