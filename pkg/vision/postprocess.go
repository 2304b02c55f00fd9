// Package vision provides stateless numeric helpers for post-processing
// vision model outputs. Nothing here touches artifact resolution or any
// I/O.
package vision

import "math"

// Sigmoid maps a raw logit into (0, 1).
func Sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// LtrbBoundingBox is an axis-aligned box in left/top/right/bottom order.
type LtrbBoundingBox struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Scale maps a box from normalized [0,1] coordinates into pixel
// coordinates of a width-by-height image.
func (b LtrbBoundingBox) Scale(width, height float32) LtrbBoundingBox {
	return LtrbBoundingBox{
		Left:   b.Left * width,
		Top:    b.Top * height,
		Right:  b.Right * width,
		Bottom: b.Bottom * height,
	}
}

// CalibrateLtrbBoxes scales every normalized box in place into pixel
// coordinates and returns the slice for chaining.
func CalibrateLtrbBoxes(boxes []LtrbBoundingBox, width, height float32) []LtrbBoundingBox {
	for i := range boxes {
		boxes[i] = boxes[i].Scale(width, height)
	}
	return boxes
}

// ObjectDetectionResult is one decoded detection.
type ObjectDetectionResult struct {
	BoundingBox LtrbBoundingBox
	Score       float32
	Label       string
	Index       int
}
