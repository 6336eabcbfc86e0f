// Package raylibhost runs a game in a raylib window.
package raylibhost

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

// Renderer implements host.Renderer with raylib draw calls. Views map onto
// raylib's 2D camera mode.
type Renderer struct {
	camera rl.Camera2D
	inView bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func rect(r vmath.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func vec(v vmath.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func (r *Renderer) FillRect(rc vmath.Rect, c color.RGBA) {
	rl.DrawRectangleRec(rect(rc), c)
}

func (r *Renderer) StrokeRect(rc vmath.Rect, thickness float64, c color.RGBA) {
	rl.DrawRectangleLinesEx(rect(rc), float32(thickness), c)
}

func (r *Renderer) FillCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(radius), c)
}

func (r *Renderer) StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleLinesV(vec(center), float32(radius), c)
}

// DrawTexture maps directly onto DrawTexturePro, which shares the origin,
// rotation and mirroring conventions of host.Renderer.
func (r *Renderer) DrawTexture(tex host.Texture, src, dst vmath.Rect, origin vmath.Vec2, rotation float64, tint color.RGBA) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return
	}
	rl.DrawTexturePro(t.tex, rect(src), rect(dst), vec(origin), float32(rotation), tint)
}

// DrawText draws in screen space, stepping out of the camera if one is active.
func (r *Renderer) DrawText(text string, pos vmath.Vec2, size int, c color.RGBA) {
	if r.inView {
		rl.EndMode2D()
		defer rl.BeginMode2D(r.camera)
	}
	rl.DrawText(text, int32(pos.X), int32(pos.Y), int32(size), c)
}

func (r *Renderer) BeginView(v host.View) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	r.camera = rl.NewCamera2D(vec(v.Offset), vec(v.Target), 0, float32(zoom))
	r.inView = true
	rl.BeginMode2D(r.camera)
}

func (r *Renderer) EndView() {
	if r.inView {
		rl.EndMode2D()
		r.inView = false
	}
}

// Texture is a GPU texture owned by Resources.
type Texture struct {
	Name string
	tex  rl.Texture2D
}

func (t *Texture) Size() (int, int) { return int(t.tex.Width), int(t.tex.Height) }

// Resources creates textures from generated images and caches them by name.
// It must only be used after the window is open.
type Resources struct {
	textures map[string]*Texture
	log      *zap.Logger
}

func NewResources(log *zap.Logger) *Resources {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resources{textures: make(map[string]*Texture), log: log}
}

func (r *Resources) CreateColorTexture(name string, w, h int, c color.RGBA) host.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	img := rl.GenImageColor(max(w, 1), max(h, 1), c)
	defer rl.UnloadImage(img)
	return r.store(name, rl.LoadTextureFromImage(img))
}

func (r *Resources) CreateCircleTexture(name string, radius int, c color.RGBA) host.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	size := max(radius*2, 1)
	img := rl.GenImageColor(size, size, host.Blank)
	defer rl.UnloadImage(img)
	rl.ImageDrawCircle(img, int32(radius), int32(radius), int32(radius), c)
	return r.store(name, rl.LoadTextureFromImage(img))
}

func (r *Resources) store(name string, tex rl.Texture2D) *Texture {
	t := &Texture{Name: name, tex: tex}
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

// Close unloads every texture.
func (r *Resources) Close() {
	for name, t := range r.textures {
		rl.UnloadTexture(t.tex)
		delete(r.textures, name)
	}
}
