package mdark

import (
	"fmt"
	"strings"
)

// FontOption is one entry of the font picker.
type FontOption struct {
	Name   string // Display name
	Family string // CSS font-family value
}

var fontOptions = []FontOption{
	{Name: "Sans-serif", Family: `-apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif`},
	{Name: "Arial", Family: "Arial, sans-serif"},
	{Name: "Helvetica", Family: "Helvetica, Arial, sans-serif"},
	{Name: "Inter", Family: "Inter, sans-serif"},
	{Name: "Roboto", Family: "Roboto, sans-serif"},
	{Name: "Open Sans", Family: `"Open Sans", sans-serif`},
	{Name: "Lato", Family: "Lato, sans-serif"},
	{Name: "Montserrat", Family: "Montserrat, sans-serif"},
	{Name: "Poppins", Family: "Poppins, sans-serif"},
	{Name: "Nunito", Family: "Nunito, sans-serif"},
}

// DefaultFont is the font selected at startup.
var DefaultFont = fontOptions[0]

// FontOptions returns the fixed font list in picker order.
func FontOptions() []FontOption {
	out := make([]FontOption, len(fontOptions))
	copy(out, fontOptions)
	return out
}

// FontNames returns the display names of FontOptions.
func FontNames() []string {
	names := make([]string, len(fontOptions))
	for i, f := range fontOptions {
		names[i] = f.Name
	}
	return names
}

// LookupFont finds a font by display name, ignoring case.
func LookupFont(name string) (FontOption, error) {
	for _, f := range fontOptions {
		if strings.EqualFold(f.Name, strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return FontOption{}, fmt.Errorf("%w: %q", ErrUnknownFont, name)
}

// NextFont returns the option after current, wrapping around.
func NextFont(current FontOption) FontOption {
	for i, f := range fontOptions {
		if f.Name == current.Name {
			return fontOptions[(i+1)%len(fontOptions)]
		}
	}
	return DefaultFont
}
