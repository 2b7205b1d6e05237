package mdark

import (
	"errors"
	"testing"
)

func TestFontOptions(t *testing.T) {
	t.Parallel()

	opts := FontOptions()
	if len(opts) != 10 {
		t.Fatalf("len(FontOptions()) = %d, want 10", len(opts))
	}
	if opts[0] != DefaultFont || DefaultFont.Name != "Sans-serif" {
		t.Errorf("DefaultFont = %+v, want first option Sans-serif", DefaultFont)
	}

	opts[0].Name = "mutated"
	if FontOptions()[0].Name != "Sans-serif" {
		t.Error("FontOptions() must return a copy")
	}
}

func TestLookupFont(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{name: "Inter", want: "Inter, sans-serif"},
		{name: "open sans", want: `"Open Sans", sans-serif`},
		{name: "  Lato ", want: "Lato, sans-serif"},
		{name: "Comic Sans", wantErr: ErrUnknownFont},
		{name: "", wantErr: ErrUnknownFont},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LookupFont(tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LookupFont(%q) error = %v, want %v", tt.name, err, tt.wantErr)
				}
				return
			}
			if err != nil || got.Family != tt.want {
				t.Errorf("LookupFont(%q) = %+v, %v; want family %q", tt.name, got, err, tt.want)
			}
		})
	}
}

func TestNextFont(t *testing.T) {
	t.Parallel()

	names := FontNames()
	f := DefaultFont
	for i := 1; i <= len(names); i++ {
		f = NextFont(f)
		if want := names[i%len(names)]; f.Name != want {
			t.Fatalf("step %d: NextFont = %q, want %q", i, f.Name, want)
		}
	}
	if NextFont(FontOption{Name: "nope"}) != DefaultFont {
		t.Error("unknown font should cycle back to the default")
	}
}
