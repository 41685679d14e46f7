// Package imaging turns camera frames into goal detector inputs and renders
// the detector's debug output.
//
// It provides simple stand-ins for the upstream stages of the vision
// pipeline (white/green pixel classification, field-border mask, post width
// model) so that frames read from disk can be processed end to end, plus
// helpers drawing ROIs over a frame, cropping them and saving images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Masks produced here always start at the origin, whatever the bounds of
// the source frame.
//
// # Color Classification
//
// Pixels are classified in HSV space:
//   - White: low saturation and high value
//   - Green: hue within the grass range with enough saturation and value
//
// A pixel is never both. Classification masks use 255 for foreground and 0
// for background.
//
// # Thread Safety
//
// All functions are stateless and can be called concurrently on different
// images.
package imaging
