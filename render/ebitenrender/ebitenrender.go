// Package ebitenrender implements the engine's Renderer boundary on top of
// Ebitengine.
package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/mathf"
)

// Renderer draws sprites onto an Ebiten image. Set the frame's target from
// the game's Draw callback before rendering; world coordinates are mapped
// to pixels with PixelsPerUnit and a Y flip so +Y is up in world space.
type Renderer struct {
	PixelsPerUnit float64
	// Camera is the world-space point shown at the screen center.
	Camera mathf.Vec2

	target   *ebiten.Image
	textures map[string]*ebiten.Image
	white    *ebiten.Image
}

// New creates a renderer mapping one world unit to the given pixel count.
func New(pixelsPerUnit float64) *Renderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Renderer{
		PixelsPerUnit: pixelsPerUnit,
		textures:      make(map[string]*ebiten.Image),
		white:         white,
	}
}

// RegisterTexture associates a decoded image with a sprite texture path.
// Sprites referencing unregistered paths draw as flat-colored quads.
func (r *Renderer) RegisterTexture(path string, img *ebiten.Image) {
	r.textures[path] = img
}

// SetTarget points the renderer at this frame's destination image.
func (r *Renderer) SetTarget(target *ebiten.Image) {
	r.target = target
}

func (r *Renderer) BeginFrame(clear engine.Color) {
	if r.target == nil {
		return
	}
	r.target.Fill(color.RGBA{
		R: uint8(clear[0] * 255),
		G: uint8(clear[1] * 255),
		B: uint8(clear[2] * 255),
		A: uint8(clear[3] * 255),
	})
}

func (r *Renderer) DrawSprite(sprite *engine.Sprite, transform *mathf.Transform, _ float64) {
	if r.target == nil {
		return
	}

	img, ok := r.textures[sprite.Texture]
	if !ok {
		img = r.white
	}

	bounds := img.Bounds()
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())
	if sprite.Source != nil {
		sub := bounds
		sub.Min.X = bounds.Min.X + int(sprite.Source.X)
		sub.Min.Y = bounds.Min.Y + int(sprite.Source.Y)
		sub.Max.X = sub.Min.X + int(sprite.Source.Width)
		sub.Max.Y = sub.Min.Y + int(sprite.Source.Height)
		img = img.SubImage(sub).(*ebiten.Image)
		srcW = sprite.Source.Width
		srcH = sprite.Source.Height
	}

	var op ebiten.DrawImageOptions

	// Scale source pixels to world size, then world units to pixels.
	scaleX := sprite.Size.X / srcW * transform.Scale.X * r.PixelsPerUnit
	scaleY := sprite.Size.Y / srcH * transform.Scale.Y * r.PixelsPerUnit
	if sprite.FlipX {
		scaleX = -scaleX
	}
	if sprite.FlipY {
		scaleY = -scaleY
	}

	op.GeoM.Translate(-srcW/2, -srcH/2)
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Rotate(-transform.ZRotation()) // screen Y points down

	screenW := float64(r.target.Bounds().Dx())
	screenH := float64(r.target.Bounds().Dy())
	pos := transform.XY().Sub(r.Camera).Scale(r.PixelsPerUnit)
	op.GeoM.Translate(screenW/2+pos.X, screenH/2-pos.Y)

	op.ColorScale.Scale(
		float32(sprite.Color[0]),
		float32(sprite.Color[1]),
		float32(sprite.Color[2]),
		float32(sprite.Color[3]),
	)

	r.target.DrawImage(img, &op)
}

func (r *Renderer) EndFrame() {
	r.target = nil
}
