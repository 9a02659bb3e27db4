package systems

import (
	"image"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// TextShape is the rasterized form of a text burst.
type TextShape struct {
	Points   []components.Point // Emission offsets relative to the centroid
	Step     int                // Scan step used to sample the bitmap
	Color    components.HSL
	SizeMult float64
}

// TextRasterizer turns text into particle emission points.
// The offscreen bitmap is transient per call; only font faces are cached.
type TextRasterizer struct {
	cfg *config.TextConfig

	font  *opentype.Font
	faces map[float64]font.Face

	warnOnce sync.Once
}

// NewTextRasterizer creates a rasterizer using the bundled Go Bold font.
// A font that fails to parse leaves the rasterizer usable: every call then
// yields an empty shape.
func NewTextRasterizer(cfg *config.TextConfig) *TextRasterizer {
	tr := &TextRasterizer{
		cfg:   cfg,
		faces: make(map[float64]font.Face),
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		slog.Warn("text rasterizer font unavailable", "error", err)
		return tr
	}
	tr.font = f
	return tr
}

// FontSize returns the pixel size used for text.
// Short text (digits, initials) renders larger; countdown mode halves the size.
func (tr *TextRasterizer) FontSize(text string, countdown bool) float64 {
	size := tr.cfg.SmallFontSize
	if len([]rune(text)) <= tr.cfg.LargeMaxChars {
		size = tr.cfg.LargeFontSize
	}
	if countdown {
		size /= 2
	}
	return size
}

// Rasterize renders text and returns its emission points, colour and size multiplier.
func (tr *TextRasterizer) Rasterize(text string, hue float64, countdown bool) TextShape {
	shape := TextShape{
		Step:     tr.cfg.StepNormal,
		Color:    components.HSL{H: hue, S: 1, L: tr.cfg.NormalLightness},
		SizeMult: tr.cfg.SizeMult,
	}
	if countdown {
		shape.Step = tr.cfg.StepCountdown
		shape.Color = components.HSL{H: tr.cfg.CountdownHue, S: 1, L: tr.cfg.CountdownLightness}
	}

	mask := tr.Mask(text, tr.FontSize(text, countdown))
	if mask == nil {
		return shape
	}
	shape.Points = tr.EmissionPoints(mask, shape.Step)
	return shape
}

// Mask draws text centred on a padded alpha bitmap.
// Returns nil when no font face is available.
func (tr *TextRasterizer) Mask(text string, size float64) *image.Alpha {
	face := tr.face(size)
	if face == nil {
		return nil
	}

	pad := tr.cfg.Padding
	textWidth := font.MeasureString(face, text).Ceil()
	w := textWidth + pad
	h := int(size) + pad

	img := image.NewAlpha(image.Rect(0, 0, w, h))

	// Middle baseline: centre the ascent-descent box vertically
	m := face.Metrics()
	baseline := (h + m.Ascent.Ceil() - m.Descent.Ceil()) / 2

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P((w-textWidth)/2, baseline),
	}
	d.DrawString(text)
	return img
}

// EmissionPoints scans the mask on a step grid and returns the offsets, from
// the bitmap centre, of every pixel more opaque than the configured threshold.
func (tr *TextRasterizer) EmissionPoints(mask *image.Alpha, step int) []components.Point {
	if step < 1 {
		step = 1
	}
	b := mask.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2

	var points []components.Point
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			if mask.AlphaAt(x, y).A > tr.cfg.AlphaThreshold {
				points = append(points, components.Point{
					X: float64(x-b.Min.X) - cx,
					Y: float64(y-b.Min.Y) - cy,
				})
			}
		}
	}
	return points
}

// face returns a cached face for size, creating it on first use.
func (tr *TextRasterizer) face(size float64) font.Face {
	if tr.font == nil {
		tr.warnOnce.Do(func() {
			slog.Warn("text burst skipped: no font available")
		})
		return nil
	}
	if f, ok := tr.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(tr.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		slog.Warn("text face creation failed", "size", size, "error", err)
		return nil
	}
	tr.faces[size] = f
	return f
}
