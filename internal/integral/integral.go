package integral

import (
	"fmt"
	"image"
)

// Image is a summed-area table of a single-channel source.
//
// Elements are 32-bit, which is enough for binary masks of any camera
// resolution in use (a 4096×4096 all-foreground mask sums to 2^24).
type Image struct {
	rows int // source rows (table has rows+1)
	cols int // source cols (table has cols+1)
	data []int32
}

// New allocates a zeroed table for a rows×cols source.
func New(rows, cols int) *Image {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Image{
		rows: rows,
		cols: cols,
		data: make([]int32, (rows+1)*(cols+1)),
	}
}

// FromTable wraps an existing (rows+1)×(cols+1) row-major table.
//
// The slice is used in place, not copied. It is the caller's responsibility
// to keep it unchanged for as long as the Image is in use.
func FromTable(rows, cols int, table []int32) (*Image, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid integral image size %dx%d", rows, cols)
	}
	if len(table) != (rows+1)*(cols+1) {
		return nil, fmt.Errorf("integral table has %d entries, want %d for a %dx%d source",
			len(table), (rows+1)*(cols+1), rows, cols)
	}
	return &Image{rows: rows, cols: cols, data: table}, nil
}

// FromGray builds the table of a binary mask: every non-zero pixel counts 1.
func FromGray(mask *image.Gray) *Image {
	b := mask.Bounds()
	ii := New(b.Dy(), b.Dx())
	ii.Accumulate(mask)
	return ii
}

// Accumulate recomputes the table in place from mask, which must have the
// same size as the table's source. It is the allocation-free counterpart of
// FromGray for per-frame reuse.
func (ii *Image) Accumulate(mask *image.Gray) {
	b := mask.Bounds()
	stride := ii.cols + 1
	for y := 0; y < ii.rows && y < b.Dy(); y++ {
		var rowSum int32
		row := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		above := ii.data[y*stride : (y+1)*stride]
		cur := ii.data[(y+1)*stride : (y+2)*stride]
		for x := 0; x < ii.cols && x < len(row); x++ {
			if row[x] != 0 {
				rowSum++
			}
			cur[x+1] = above[x+1] + rowSum
		}
	}
}

// Rows returns the number of source rows.
func (ii *Image) Rows() int { return ii.rows }

// Cols returns the number of source columns.
func (ii *Image) Cols() int { return ii.cols }

// At returns the raw table entry (y, x), with 0 <= y <= Rows and 0 <= x <= Cols.
func (ii *Image) At(y, x int) int32 {
	return ii.data[y*(ii.cols+1)+x]
}

// Clamp intersects r with the source extent [0, Cols) × [0, Rows).
// The result may be empty.
func (ii *Image) Clamp(r image.Rectangle) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, ii.cols, ii.rows))
}

// Sum returns the sum of source pixels inside r after clamping.
// An empty or fully outside rectangle sums to 0.
func (ii *Image) Sum(r image.Rectangle) int64 {
	r = ii.Clamp(r)
	if r.Empty() {
		return 0
	}
	return ii.sum(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// sum is the four-corner inclusion-exclusion on an already clamped rectangle.
func (ii *Image) sum(x1, y1, x2, y2 int) int64 {
	stride := ii.cols + 1
	a := int64(ii.data[y1*stride+x1])
	b := int64(ii.data[y1*stride+x2])
	c := int64(ii.data[y2*stride+x1])
	d := int64(ii.data[y2*stride+x2])
	return d - b - c + a
}
