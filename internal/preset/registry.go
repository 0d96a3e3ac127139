package preset

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"
)

//go:embed builtin/*.json
var builtinFS embed.FS

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	registry     = map[string][]byte{}
)

func loadBuiltins() {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("preset: read builtin presets: %v", err))
	}
	for _, entry := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("preset: read %s: %v", entry.Name(), err))
		}
		p, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("preset: builtin %s: %v", entry.Name(), err))
		}
		registry[p.Name] = data
	}
}

// Register adds or replaces a named preset.
func Register(p *Preset) error {
	registryOnce.Do(loadBuiltins)
	data, err := jsonOf(p)
	if err != nil {
		return err
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name] = data
	return nil
}

// Get returns a fresh copy of the named preset.
func Get(name string) (*Preset, error) {
	registryOnce.Do(loadBuiltins)
	registryMu.RLock()
	data, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return Parse(data)
}

// Names lists registered presets alphabetically.
func Names() []string {
	registryOnce.Do(loadBuiltins)
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func jsonOf(p *Preset) ([]byte, error) {
	if p == nil || p.Name == "" {
		return nil, fmt.Errorf("preset: register needs a named preset")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode preset %s: %w", p.Name, err)
	}
	return data, nil
}
