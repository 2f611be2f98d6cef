package render

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/domain/port"
)

var (
	referenceColor = color.RGBA{G: 255, A: 255}
	fragmentColor  = color.RGBA{R: 255, A: 255}
	fragmentText   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	labelBack      = color.NRGBA{R: 255, G: 255, B: 255, A: 220}
)

const (
	lineThickness = 3
	labelPadding  = 4
)

// Renderer рисует контуры и подписи на копии исходного изображения.
type Renderer struct {
	face font.Face
}

func NewRenderer() *Renderer {
	return &Renderer{face: basicfont.Face7x13}
}

// Render возвращает новое изображение: эталон зелёным, фрагменты красным,
// подписи на белой подложке у центра масс.
func (r *Renderer) Render(img *entity.ImageBuffer, overlays []entity.Overlay) (*image.RGBA, error) {
	if img == nil {
		return nil, errors.New("empty image")
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	dst := img.Image()

	for _, o := range overlays {
		drawPolygon(dst, o.Boundary, roleColor(o.Role), lineThickness)
	}
	for _, o := range overlays {
		if o.Anchor == nil || o.Label == "" {
			continue
		}
		textColor, shift := fragmentText, 40
		if o.Role == entity.RoleReference {
			textColor, shift = referenceColor, 60
		}
		r.drawLabel(dst, o.Label, o.Anchor.X-shift, o.Anchor.Y, textColor)
	}
	return dst, nil
}

func roleColor(role entity.OverlayRole) color.RGBA {
	if role == entity.RoleReference {
		return referenceColor
	}
	return fragmentColor
}

// drawLabel текст с подложкой; (x, y) базовая линия слева.
func (r *Renderer) drawLabel(dst *image.RGBA, text string, x, y int, c color.Color) {
	m := r.face.Metrics()
	width := font.MeasureString(r.face, text).Ceil()
	back := image.Rect(
		x-labelPadding,
		y-m.Ascent.Ceil()-labelPadding,
		x+width+labelPadding,
		y+m.Descent.Ceil()+labelPadding,
	)
	draw.Draw(dst, back.Intersect(dst.Bounds()), image.NewUniform(labelBack), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawPolygon замкнутая ломаная толщиной thickness.
func drawPolygon(dst *image.RGBA, pts []image.Point, c color.RGBA, thickness int) {
	switch len(pts) {
	case 0:
		return
	case 1:
		stamp(dst, pts[0], c, thickness)
		return
	}
	for i := range pts {
		drawLine(dst, pts[i], pts[(i+1)%len(pts)], c, thickness)
	}
}

// drawLine отрезок по Брезенхэму с квадратной кистью.
func drawLine(dst *image.RGBA, a, b image.Point, c color.RGBA, thickness int) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	p := a
	for {
		stamp(dst, p, c, thickness)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func stamp(dst *image.RGBA, p image.Point, c color.RGBA, thickness int) {
	half := thickness / 2
	r := image.Rect(p.X-half, p.Y-half, p.X-half+thickness, p.Y-half+thickness).Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ port.OverlayRenderer = (*Renderer)(nil)
