// Package assets provides the preview stylesheet and the stage page used
// when a rendered tree is rasterized.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── Builtin    - compiled in with go:embed
//	    ├── DirLoader  - a directory on disk
//	    └── Overlay    - DirLoader first, Builtin for anything missing
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── preview.css
//	└── templates/
//	    └── stage.html
//
// Overriding one file keeps the built-in version of the other.
//
// # Security
//
// Names are bare words; DirLoader also resolves symlinks and refuses any
// file outside its root.
package assets
