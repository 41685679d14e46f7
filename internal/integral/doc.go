// Package integral provides summed-area tables ("integral images") for
// constant-time rectangle sums over binary classification masks.
//
// # Layout
//
// An Image built from a rows×cols source has (rows+1)×(cols+1) entries
// stored row-major. Entry (y, x) holds the sum of every source pixel in
// [0, x) × [0, y), so row 0 and column 0 are always zero. Values are
// monotonically non-decreasing along both axes for non-negative sources.
//
// # Coordinate System
//
// Rectangles use half-open intervals: (x1, y1) is inclusive and (x2, y2) is
// exclusive, matching image.Rectangle. Sum clamps any rectangle to the valid
// source extent before reading the table, so callers may pass rectangles that
// overlap or lie completely outside the image.
package integral
