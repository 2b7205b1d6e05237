// Package mdark renders markdown into a styled document tree and exports that
// tree as a single-page A4 PDF.
//
// # Pipeline
//
//	source ──Renderer──▶ RenderTree ──Exporter──▶ Artifact ──Saver──▶ markdown-document.pdf
//
// The Exporter never touches the tree it is given. It works on a deep clone:
//
//  1. Clone the surface tree.
//  2. Force the StyleOverrides colours onto every element of the clone.
//  3. Attach the clone to an off-screen Stage at the surface width.
//  4. Rasterize it at 2x with the override background.
//  5. Detach the clone.
//  6. Scale the raster to fit one A4 portrait page, centred horizontally and
//     anchored at the top.
//  7. Save the document under a fixed name and bump the UsageCounter.
//
// At most one export runs at a time per Exporter. A second call while one is
// in flight returns ErrExportInFlight and has no side effect.
//
// # Basic Usage
//
//	r := mdark.NewRenderer()
//	tree, _ := r.Render(ctx, "# Title\n\nHello **world**")
//
//	exp := mdark.NewExporter(mdark.WithOutputDir("."))
//	defer exp.Close()
//
//	art, err := exp.Export(ctx, &mdark.Surface{Tree: tree, Width: 800}, mdark.ResolveOverrides(true))
//
// # Editor
//
// Editor bundles the application state (source, font, themes, help and error
// visibility, usage count) with a Renderer and an Exporter. Frontends such as
// the terminal UI read its State and call its methods.
package mdark
