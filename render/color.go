package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/billiard/parameter"
)

// ResolveColor turns a CSS color name or #rrggbb into a tcell color
// Names are case-insensitive, unknown values give parameter.FallbackColor
func ResolveColor(name string) tcell.Color {
	if c := tcell.GetColor(strings.ToLower(strings.TrimSpace(name))); c != tcell.ColorDefault {
		return c.TrueColor()
	}
	return tcell.GetColor(parameter.FallbackColor).TrueColor()
}

// KnownColor reports whether name resolves without the fallback
func KnownColor(name string) bool {
	return tcell.GetColor(strings.ToLower(strings.TrimSpace(name))) != tcell.ColorDefault
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shadeRamp returns parameter.ShadeLevels colors from the base color at the centre
// to the darkest rim tone, blended in Lab space
func shadeRamp(base tcell.Color) []tcell.Color {
	from := toColorful(base)
	black := colorful.Color{}
	ramp := make([]tcell.Color, parameter.ShadeLevels)
	for i := range ramp {
		t := 0.0
		if parameter.ShadeLevels > 1 {
			t = float64(i) / float64(parameter.ShadeLevels-1) * parameter.RimShade
		}
		ramp[i] = fromColorful(from.BlendLab(black, t))
	}
	return ramp
}

// palette caches shade ramps per color name, render goroutine only
type palette struct {
	ramps map[string][]tcell.Color
}

func newPalette() *palette {
	return &palette{ramps: make(map[string][]tcell.Color)}
}

// shade picks the ramp entry for a cell at normalized distance d in [0, 1] from the ball centre
func (p *palette) shade(name string, d float64) tcell.Color {
	ramp, ok := p.ramps[name]
	if !ok {
		ramp = shadeRamp(ResolveColor(name))
		p.ramps[name] = ramp
	}
	i := int(d * d * float64(len(ramp)))
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	if i < 0 {
		i = 0
	}
	return ramp[i]
}
