// Package pipeline implements the text and tree stages behind the preview
// and the PDF export:
//   - Markdown preprocessing (line-ending normalization)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//   - Relative image path resolution for file-backed documents
//   - Colour override application on a cloned render tree
//   - Token stylesheet generation for highlighted code
//
// Rasterization and PDF assembly live in the root mdark package; this
// package never touches a browser or the filesystem beyond resolving paths.
package pipeline
