package engine

import "github.com/plus3/lumen/mathf"

// Color is an RGBA color with components in [0, 1].
type Color [4]float64

// White is the neutral sprite tint.
var White = Color{1, 1, 1, 1}

// Rect is a texture sub-region in pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sprite is the drawable component. It references a texture by logical
// path; decoding the texture is the asset manager's job, never the core's.
type Sprite struct {
	Texture string     `json:"texture"`
	Color   Color      `json:"color"`
	FlipX   bool       `json:"flipX"`
	FlipY   bool       `json:"flipY"`
	Size    mathf.Vec2 `json:"size"`
	Source  *Rect      `json:"source,omitempty"`
}

// NewSprite returns a sprite for the given texture path with a white tint
// and the given size in world units.
func NewSprite(texture string, size mathf.Vec2) Sprite {
	return Sprite{Texture: texture, Color: White, Size: size}
}

// Renderer is the boundary the engine draws through. Each frame the engine
// brackets zero or more DrawSprite calls between BeginFrame and EndFrame.
// The alpha passed to DrawSprite is the interpolation fraction in [0, 1)
// between the previous and current physics tick; renderers that do not
// interpolate may ignore it.
type Renderer interface {
	BeginFrame(clear Color)
	DrawSprite(sprite *Sprite, transform *mathf.Transform, alpha float64)
	EndFrame()
}

// NullRenderer discards all draw calls. Used by headless runs and tests.
type NullRenderer struct {
	Frames  int
	Sprites int
}

func (r *NullRenderer) BeginFrame(Color) { r.Frames++ }

func (r *NullRenderer) DrawSprite(*Sprite, *mathf.Transform, float64) { r.Sprites++ }

func (r *NullRenderer) EndFrame() {}
