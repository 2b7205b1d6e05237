package mdark

import (
	"github.com/alnah/go-mdark/internal/pipeline"
)

// StyleOverrides is the colour set forced onto an export clone.
// Only two values exist, see ResolveOverrides.
type StyleOverrides struct {
	Dark           bool
	Background     string
	Foreground     string
	Border         string
	CodeBackground string
	CodeForeground string
}

var (
	lightOverrides = StyleOverrides{
		Background:     "#ffffff",
		Foreground:     "#000000",
		Border:         "#999999",
		CodeBackground: "#f5f5f5",
		CodeForeground: "#000000",
	}
	darkOverrides = StyleOverrides{
		Dark:           true,
		Background:     "#000000",
		Foreground:     "#ffffff",
		Border:         "#999999",
		CodeBackground: "#2d2d2d",
		CodeForeground: "#ffffff",
	}
)

// ResolveOverrides returns the dark or light export profile.
func ResolveOverrides(exportDark bool) StyleOverrides {
	if exportDark {
		return darkOverrides
	}
	return lightOverrides
}

// Properties returns the generic property map: color, background-color and
// border-color.
func (o StyleOverrides) Properties() map[string]string {
	return map[string]string{
		pipeline.PropColor:           o.Foreground,
		pipeline.PropBackgroundColor: o.Background,
		pipeline.PropBorderColor:     o.Border,
	}
}

// CodeStyle names the chroma style used for token colours on this background.
func (o StyleOverrides) CodeStyle() string {
	if o.Dark {
		return pipeline.DarkCodeStyle
	}
	return pipeline.LightCodeStyle
}

// Name returns "dark" or "light".
func (o StyleOverrides) Name() string {
	if o.Dark {
		return "dark"
	}
	return "light"
}

func (o StyleOverrides) colorSet() pipeline.ColorSet {
	return pipeline.ColorSet{
		Background:     o.Background,
		Foreground:     o.Foreground,
		Border:         o.Border,
		CodeBackground: o.CodeBackground,
		CodeForeground: o.CodeForeground,
	}
}
