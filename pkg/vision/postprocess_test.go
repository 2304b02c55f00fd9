package vision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/furiosa-ai/model-artifacts/pkg/vision"
)

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, vision.Sigmoid(0), 1e-6)
	assert.InDelta(t, 1.0, vision.Sigmoid(20), 1e-6)
	assert.InDelta(t, 0.0, vision.Sigmoid(-20), 1e-6)

	// Symmetry: sigmoid(-x) == 1 - sigmoid(x)
	for _, x := range []float32{0.1, 1, 2.5, 7} {
		assert.InDelta(t, 1-vision.Sigmoid(x), vision.Sigmoid(-x), 1e-5)
	}

	// Monotonic
	assert.Less(t, vision.Sigmoid(-1), vision.Sigmoid(1))
}

func TestLtrbBoundingBoxScale(t *testing.T) {
	box := vision.LtrbBoundingBox{Left: 0.1, Top: 0.2, Right: 0.5, Bottom: 0.8}
	scaled := box.Scale(640, 480)

	assert.InDelta(t, 64, scaled.Left, 1e-4)
	assert.InDelta(t, 96, scaled.Top, 1e-4)
	assert.InDelta(t, 320, scaled.Right, 1e-4)
	assert.InDelta(t, 384, scaled.Bottom, 1e-4)
}

func TestCalibrateLtrbBoxes(t *testing.T) {
	boxes := []vision.LtrbBoundingBox{
		{Left: 0, Top: 0, Right: 1, Bottom: 1},
		{Left: 0.5, Top: 0.5, Right: 0.75, Bottom: 0.25},
	}

	got := vision.CalibrateLtrbBoxes(boxes, 100, 200)

	// Scales in place and returns the same slice.
	assert.Equal(t, &boxes[0], &got[0])
	assert.Equal(t, vision.LtrbBoundingBox{Left: 0, Top: 0, Right: 100, Bottom: 200}, boxes[0])
	assert.Equal(t, vision.LtrbBoundingBox{Left: 50, Top: 100, Right: 75, Bottom: 50}, boxes[1])
}
