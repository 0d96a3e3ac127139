package texture

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"cloud-shadows/internal/clouds"
)

// ProceduralSize is the side length of masks generated from procedural references.
const ProceduralSize = 256

// Library resolves texture references to masks, caching each one. References
// are either "procedural:<seed>[:<octaves>]" or paths relative to Dir.
type Library struct {
	Dir string

	mu    sync.Mutex
	cache map[string]*Mask
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir, cache: make(map[string]*Mask)}
}

// Resolve returns the mask for ref, loading or generating it on first use.
func (l *Library) Resolve(ref string) (clouds.Texture, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache == nil {
		l.cache = make(map[string]*Mask)
	}
	if m, ok := l.cache[ref]; ok {
		return m, nil
	}
	m, err := l.load(ref)
	if err != nil {
		return nil, err
	}
	m.name = ref
	l.cache[ref] = m
	return m, nil
}

func (l *Library) load(ref string) (*Mask, error) {
	if rest, ok := strings.CutPrefix(ref, "procedural:"); ok {
		seedStr, octStr, _ := strings.Cut(rest, ":")
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("procedural texture %q: bad seed: %w", ref, err)
		}
		octaves := 5
		if octStr != "" {
			if octaves, err = strconv.Atoi(octStr); err != nil {
				return nil, fmt.Errorf("procedural texture %q: bad octaves: %w", ref, err)
			}
		}
		return Procedural(ProceduralSize, seed, octaves), nil
	}
	path := ref
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	return Load(path)
}
