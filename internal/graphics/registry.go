package graphics

import (
	"fmt"
	"sort"
)

// Registry maps stable integer IDs (the codes stored in levels and sprite
// records) and names (used by configuration) to textures.
type Registry struct {
	textures []*Texture
	names    map[string]int
	fallback *Texture
}

func NewRegistry() *Registry {
	return &Registry{
		names:    make(map[string]int),
		fallback: Placeholder("missing"),
	}
}

// Register binds t to id and to t.Name, replacing any previous binding.
func (r *Registry) Register(id int, t *Texture) error {
	if id < 0 {
		return fmt.Errorf("texture %q: negative id %d", t.Name, id)
	}
	if t.Width <= 0 || t.Height <= 0 || t.Width&(t.Width-1) != 0 || t.Height&(t.Height-1) != 0 {
		return fmt.Errorf("%w: %s is %dx%d", ErrNotPowerOfTwo, t.Name, t.Width, t.Height)
	}
	if len(t.Pix) != t.Width*t.Height {
		return fmt.Errorf("texture %q: %d texels for %dx%d", t.Name, len(t.Pix), t.Width, t.Height)
	}
	for len(r.textures) <= id {
		r.textures = append(r.textures, nil)
	}
	if old := r.textures[id]; old != nil && r.names[old.Name] == id {
		delete(r.names, old.Name)
	}
	r.textures[id] = t
	if t.Name != "" {
		r.names[t.Name] = id
	}
	return nil
}

// Get returns the texture for id, or the placeholder when id is unbound.
func (r *Registry) Get(id int) *Texture {
	if id >= 0 && id < len(r.textures) && r.textures[id] != nil {
		return r.textures[id]
	}
	return r.fallback
}

// Has reports whether id is bound.
func (r *Registry) Has(id int) bool {
	return id >= 0 && id < len(r.textures) && r.textures[id] != nil
}

// ID resolves a texture name.
func (r *Registry) ID(name string) (int, error) {
	id, ok := r.names[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	return id, nil
}

// Names lists registered names in ID order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return r.names[names[i]] < r.names[names[j]] })
	return names
}

// Len returns one past the highest bound ID.
func (r *Registry) Len() int {
	return len(r.textures)
}

// Placeholder builds the texture shown for anything that failed to load:
// a magenta and grey checkerboard, fully opaque so sprites stay visible.
func Placeholder(name string) *Texture {
	t, _ := NewTexture(name, 64, 64)
	a := Pack(255, 0, 255, 255)
	b := Pack(40, 40, 40, 255)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			if (x/8+y/8)%2 == 0 {
				t.Pix[y*t.Width+x] = a
			} else {
				t.Pix[y*t.Width+x] = b
			}
		}
	}
	return t
}
