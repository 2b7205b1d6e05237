package assets

// Overlay reads from an override directory first and falls back to the
// built-in set for anything the directory does not provide. Invalid names
// and read failures are returned as is.
type Overlay struct {
	override AssetLoader // nil without an override directory
	base     AssetLoader
}

// NewOverlay layers dir over the built-in assets. An empty dir yields the
// built-ins alone.
func NewOverlay(dir string) (*Overlay, error) {
	o := &Overlay{base: NewBuiltin()}
	if dir == "" {
		return o, nil
	}
	d, err := NewDirLoader(dir)
	if err != nil {
		return nil, err
	}
	o.override = d
	return o, nil
}

// HasOverrides reports whether an override directory is configured.
func (o *Overlay) HasOverrides() bool { return o.override != nil }

func (o *Overlay) LoadStyle(name string) (string, error) {
	return o.pick(AssetLoader.LoadStyle, name)
}

func (o *Overlay) LoadTemplate(name string) (string, error) {
	return o.pick(AssetLoader.LoadTemplate, name)
}

func (o *Overlay) pick(load func(AssetLoader, string) (string, error), name string) (string, error) {
	if o.override != nil {
		s, err := load(o.override, name)
		if err == nil || !isNotFound(err) {
			return s, err
		}
	}
	return load(o.base, name)
}

var _ AssetLoader = (*Overlay)(nil)
