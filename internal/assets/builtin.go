package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles templates
var builtinFS embed.FS

// Builtin serves the assets compiled into the binary.
type Builtin struct {
	fsys fs.FS
}

// NewBuiltin returns the embedded asset set.
func NewBuiltin() *Builtin {
	return &Builtin{fsys: builtinFS}
}

func (b *Builtin) LoadStyle(name string) (string, error) {
	return b.read(styleKind, name)
}

func (b *Builtin) LoadTemplate(name string) (string, error) {
	return b.read(templateKind, name)
}

func (b *Builtin) read(k kind, name string) (string, error) {
	file, err := k.file(name)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(b.fsys, file)
	if err != nil {
		return "", k.notFound(name)
	}
	return string(data), nil
}

var defaultBuiltin = NewBuiltin()

// LoadStyle reads a built-in stylesheet.
func LoadStyle(name string) (string, error) {
	return defaultBuiltin.LoadStyle(name)
}

// LoadTemplate reads a built-in page template.
func LoadTemplate(name string) (string, error) {
	return defaultBuiltin.LoadTemplate(name)
}

var _ AssetLoader = (*Builtin)(nil)
