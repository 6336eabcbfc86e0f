package headless

import (
	"image/color"

	"github.com/plus3/lumen/host"
	"go.uber.org/zap"
)

// Texture is an in-memory texture description.
type Texture struct {
	Name   string
	W, H   int
	Color  color.RGBA
	Circle bool
}

func (t *Texture) Size() (int, int) { return t.W, t.H }

// Resources caches textures by name. It implements host.Resources.
type Resources struct {
	textures map[string]*Texture
	log      *zap.Logger
}

func NewResources(log *zap.Logger) *Resources {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resources{
		textures: make(map[string]*Texture),
		log:      log,
	}
}

func (r *Resources) CreateColorTexture(name string, w, h int, c color.RGBA) host.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	t := &Texture{Name: name, W: w, H: h, Color: c}
	r.textures[name] = t
	return t
}

func (r *Resources) CreateCircleTexture(name string, radius int, c color.RGBA) host.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	t := &Texture{Name: name, W: radius * 2, H: radius * 2, Color: c, Circle: true}
	r.textures[name] = t
	return t
}

// Texture returns nil, never a typed nil, when name is unknown.
func (r *Resources) Texture(name string) host.Texture {
	t, ok := r.textures[name]
	if !ok {
		r.log.Warn("texture not found", zap.String("name", name))
		return nil
	}
	return t
}

func (r *Resources) Len() int {
	return len(r.textures)
}
