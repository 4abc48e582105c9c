// Package imaging provides image I/O and color inspection support for the
// pixel-art render server.
//
// It wraps decoding/encoding (PNG, JPEG, GIF) behind a thread-safe source
// cache, and offers color inspection helpers: single-pixel sampling and an
// exact distinct-color census used to examine render output palettes.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner:
// X increases rightward, Y increases downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The inspection functions are
// stateless and can be called concurrently on different images; cached
// source images are treated as read-only.
//
// # Error Handling
//
// Functions return errors for coordinates outside image bounds, zero-size
// images, and file I/O or codec failures, wrapped with %w for errors.Is
// inspection.
package imaging
