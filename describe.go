package strata

import "encoding/json"

// Capability classifications reported by Describe.
const (
	CapabilitySpecific = "specific"
	CapabilityGeneric  = "generic"
	CapabilityNone     = "none"
)

// LayerStatus pairs a declared layer with its enablement flag.
type LayerStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// SetDocument is a JSON-serialisable description of a layer set.
type SetDocument struct {
	Layers       []LayerStatus `json:"layers"`
	EnabledCount int           `json:"enabled_count"`
}

// Describe reports every declared layer with its enablement flag, in
// declaration order.
func (s *Set) Describe() SetDocument {
	doc := SetDocument{EnabledCount: s.EnabledCount()}
	for i, layer := range s.Declared() {
		doc.Layers = append(doc.Layers, LayerStatus{
			Name:    layer.Name(),
			Enabled: s.status[i],
		})
	}
	return doc
}

// HookCapability reports how a layer contributes to a composed pipeline.
type HookCapability struct {
	Layer  string `json:"layer"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// PipelineDocument is a JSON-serialisable description of a composed pipeline.
type PipelineDocument struct {
	Op     string           `json:"op"`
	Layers []HookCapability `json:"layers"`
}

// Describe reports the capability resolution of every enabled layer in
// declaration order.
func (p *Pipeline[A, R]) Describe() PipelineDocument {
	return PipelineDocument{
		Op:     p.op.Name(),
		Layers: append([]HookCapability(nil), p.capabilities...),
	}
}

// ToJSON serialises the document.
func (d PipelineDocument) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// ToJSON serialises the document.
func (d SetDocument) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}
