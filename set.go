package strata

// Enablement overrides per-layer flags by name. It stands in for an external
// configuration source; entries win over the layer's own EnabledLayer answer.
type Enablement map[string]bool

// SetOption configures Set construction.
type SetOption func(*setConfig)

type setConfig struct {
	enablement Enablement
}

// WithEnablement applies a name-keyed enablement table to the set. The table
// is consulted once, during construction.
func WithEnablement(enablement Enablement) SetOption {
	return func(cfg *setConfig) {
		cfg.enablement = enablement
	}
}

// Set is an ordered collection of layers filtered down to the enabled ones.
// Filtering happens once at construction; pipelines composed from the set
// never re-check enablement.
type Set struct {
	declared []Layer
	enabled  []Layer
	status   []bool
}

// NewSet filters layers to the enabled subset, preserving declaration order.
// Nil layers are dropped.
func NewSet(layers []Layer, opts ...SetOption) *Set {
	cfg := setConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &Set{}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		enabled := layerEnabled(layer, cfg.enablement)
		set.declared = append(set.declared, layer)
		set.status = append(set.status, enabled)
		if enabled {
			set.enabled = append(set.enabled, layer)
		}
	}
	return set
}

func layerEnabled(layer Layer, enablement Enablement) bool {
	if enablement != nil {
		if flag, ok := enablement[layer.Name()]; ok {
			return flag
		}
	}
	return IsEnabled(layer)
}

// Layers returns the enabled layers in declaration order.
func (s *Set) Layers() []Layer {
	if s == nil || len(s.enabled) == 0 {
		return nil
	}
	return append([]Layer(nil), s.enabled...)
}

// Declared returns every layer handed to NewSet, including disabled ones.
func (s *Set) Declared() []Layer {
	if s == nil || len(s.declared) == 0 {
		return nil
	}
	return append([]Layer(nil), s.declared...)
}

// EnabledCount reports how many layers survived filtering.
func (s *Set) EnabledCount() int {
	if s == nil {
		return 0
	}
	return len(s.enabled)
}

// Any reports whether at least one layer is enabled.
func (s *Set) Any() bool {
	return s.EnabledCount() > 0
}

// Status returns the per-declared-layer enablement vector in declaration
// order.
func (s *Set) Status() []bool {
	if s == nil || len(s.status) == 0 {
		return nil
	}
	return append([]bool(nil), s.status...)
}

// Names returns the names of the enabled layers in declaration order.
func (s *Set) Names() []string {
	if s == nil || len(s.enabled) == 0 {
		return nil
	}
	names := make([]string, len(s.enabled))
	for i, layer := range s.enabled {
		names[i] = layer.Name()
	}
	return names
}

// FilterLayers returns the enabled sub-list of layers, preserving order.
func FilterLayers(layers []Layer, opts ...SetOption) []Layer {
	return NewSet(layers, opts...).Layers()
}

// CountEnabled reports how many of the given layers are enabled.
func CountEnabled(layers []Layer, opts ...SetOption) int {
	return NewSet(layers, opts...).EnabledCount()
}

// AnyEnabled reports whether any of the given layers is enabled.
func AnyEnabled(layers []Layer, opts ...SetOption) bool {
	return NewSet(layers, opts...).Any()
}
