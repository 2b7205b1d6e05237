package mdark

import (
	"testing"

	"github.com/alnah/go-mdark/internal/pipeline"
)

func TestResolveOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dark     bool
		bg, fg   string
		codeBG   string
		codeSty  string
		wantName string
	}{
		{dark: false, bg: "#ffffff", fg: "#000000", codeBG: "#f5f5f5", codeSty: pipeline.LightCodeStyle, wantName: "light"},
		{dark: true, bg: "#000000", fg: "#ffffff", codeBG: "#2d2d2d", codeSty: pipeline.DarkCodeStyle, wantName: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			t.Parallel()

			o := ResolveOverrides(tt.dark)
			if o.Background != tt.bg || o.Foreground != tt.fg || o.CodeBackground != tt.codeBG {
				t.Errorf("ResolveOverrides(%v) = %+v", tt.dark, o)
			}
			if o.Border != "#999999" {
				t.Errorf("Border = %q, want #999999", o.Border)
			}
			if o.CodeForeground != o.Foreground {
				t.Errorf("CodeForeground = %q, want %q", o.CodeForeground, o.Foreground)
			}
			if o.CodeStyle() != tt.codeSty || o.Name() != tt.wantName {
				t.Errorf("CodeStyle/Name = %q/%q", o.CodeStyle(), o.Name())
			}

			props := o.Properties()
			if len(props) != 3 ||
				props["color"] != tt.fg ||
				props["background-color"] != tt.bg ||
				props["border-color"] != "#999999" {
				t.Errorf("Properties() = %v", props)
			}
		})
	}
}

func TestResolveOverrides_Pure(t *testing.T) {
	t.Parallel()

	a := ResolveOverrides(true)
	a.Background = "#123456"
	if ResolveOverrides(true).Background != "#000000" {
		t.Error("mutating a returned profile must not change later results")
	}
}
