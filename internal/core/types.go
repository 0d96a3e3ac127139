package core

// Size describes the dimensions of a render surface.
type Size struct {
	W int
	H int
}

// Scene is the per-frame contract front-ends drive. Advance runs exactly one
// host frame with the provided elapsed seconds.
type Scene interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Advance(dt float64)
}
