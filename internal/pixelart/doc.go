// Package pixelart implements the pixel-art rendering pipeline.
//
// The pipeline converts a photographic image into a blocky, palette-reduced
// rendering in four strictly ordered stages:
//
//  1. Downsample by the pixelize percentage with an area (box) filter
//  2. Optional tone adjustment: levels remap, then brightness/saturation/hue
//     modulation
//  3. Palette reduction to K colors via k-means clustering
//  4. Upsample back to the original dimensions with nearest-neighbor
//     sampling, producing the visible square blocks
//
// Every stage is a pure function over its input buffer; no state survives a
// pipeline invocation. Render composes the stages for a Params snapshot, and
// Renderer runs renders on a worker goroutine with latest-wins semantics for
// interactive callers.
//
// # Determinism
//
// Two renders with an identical source image and identical Params produce
// byte-identical output. Nothing in the pipeline uses a random source: the
// k-means centroids are seeded from evenly spaced samples of the sorted pixel
// population.
//
// # Channel Handling
//
// All stages operate on 8-bit RGBA buffers (image.NRGBA). Tone adjustment and
// clustering touch only the color channels; alpha passes through unchanged.
// Channel math clamps to [0,255] and never wraps.
package pixelart
