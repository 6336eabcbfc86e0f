package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/plus3/lumen/host"
)

// Texture wraps a GPU image created by Resources.
type Texture struct {
	Name string
	img  *ebiten.Image
}

func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) Image() *ebiten.Image { return t.img }

// Resources caches ebiten images by name. It implements host.Resources.
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
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(c)
	return r.store(name, img)
}

func (r *Resources) CreateCircleTexture(name string, radius int, c color.RGBA) host.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	size := max(radius*2, 1)
	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, float32(radius), float32(radius), float32(radius), c, true)
	return r.store(name, img)
}

// Add registers an image loaded elsewhere, such as from an embedded PNG.
func (r *Resources) Add(name string, img *ebiten.Image) host.Texture {
	if old, ok := r.textures[name]; ok {
		old.img.Deallocate()
	}
	return r.store(name, img)
}

func (r *Resources) store(name string, img *ebiten.Image) *Texture {
	t := &Texture{Name: name, img: img}
	r.textures[name] = t
	r.log.Debug("texture created", zap.String("name", name))
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

// Close releases every image.
func (r *Resources) Close() {
	for name, t := range r.textures {
		t.img.Deallocate()
		delete(r.textures, name)
	}
}
