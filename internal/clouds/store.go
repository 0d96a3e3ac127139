package clouds

import (
	"fmt"
	"iter"
)

// LayerStore is the ordered list of layers. Index 0 is composited first and
// therefore sits at the bottom.
type LayerStore struct {
	layers []*Layer
}

// NewLayerStore builds a store holding cfgs in order.
func NewLayerStore(cfgs ...LayerConfig) *LayerStore {
	s := &LayerStore{}
	for _, cfg := range cfgs {
		s.Append(cfg)
	}
	return s
}

// Append adds a layer on top of the stack and returns it.
func (s *LayerStore) Append(cfg LayerConfig) *Layer {
	l := NewLayer(cfg)
	s.layers = append(s.layers, l)
	return l
}

// Len reports the number of layers; a nil store is empty.
func (s *LayerStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// At returns the layer at index i. An out-of-range index is a caller bug and panics.
func (s *LayerStore) At(i int) *Layer {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("clouds: layer index %d out of range [0,%d)", i, s.Len()))
	}
	return s.layers[i]
}

// All yields layers in composite order.
func (s *LayerStore) All() iter.Seq2[int, *Layer] {
	return func(yield func(int, *Layer) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(i, s.layers[i]) {
				return
			}
		}
	}
}

// Configs returns a copy of every layer's static configuration in order.
func (s *LayerStore) Configs() []LayerConfig {
	out := make([]LayerConfig, 0, s.Len())
	for _, l := range s.All() {
		out = append(out, l.Config)
	}
	return out
}

// ResetAnimation zeroes every layer's animation offset.
func (s *LayerStore) ResetAnimation() {
	for _, l := range s.All() {
		l.State = LayerState{}
	}
}
