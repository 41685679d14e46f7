// Package goal locates candidate goal-post regions in a single camera frame.
//
// The detector works on two integral images (white-classified and
// green-classified pixels), a per-pixel estimate of the expected post width
// and, optionally, a field-border mask. It produces a ranked, size-bounded
// list of square regions of interest plus an optional debug heat-map.
//
// # Algorithm Overview
//
//  1. Anchor scan: anchors are visited on a grid stepped by DecimationRate.
//     An anchor is rejected when its scaled width is below MinWidth, or, when
//     the mask is used, when its mask block is empty. A completely filled
//     mask block relaxes the width threshold to FilledMaskMinWidth.
//  2. Patch scoring: for every accepted anchor, the Above, AboveLeft,
//     AboveRight, Below and Boundary patches are built and scored in O(1)
//     through the integral images. A patch score is
//     255 × (white − green) / area, in [-255, 255].
//  3. Combination: the patch scores are combined into one signed score in
//     [-510, 510] which is painted over the whole decimation block.
//  4. Extraction: accepted blocks scoring above MinScore are ranked by
//     descending score (ties in raster order) and the first MaxRois are
//     reported with their ROI square.
//
// # Coordinate System
//
// Anchors and score cells use pixel coordinates with (0,0) at the top-left.
// Patches have floating-point corners; they are rounded to the nearest pixel
// and clamped to the image before summing, so patches overlapping the border
// are legal and patches fully outside score 0.
//
// # Thread Safety
//
// A Filter owns reusable scratch buffers and must not be run concurrently.
// The accumulation itself can be sharded across goroutines with WithWorkers,
// since every decimation block writes a disjoint set of cells.
package goal
