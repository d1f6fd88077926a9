package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCarryForward(t *testing.T) {
	assert.Equal(t, 0.0, CarryForward(0, nil))
	assert.Equal(t, 0.0, CarryForward(-2, nil))
	assert.Equal(t, 5.0, CarryForward(5, nil))
	assert.Equal(t, 5.0, CarryForward(5, floatPtr(10)))
	assert.Equal(t, 10.0, CarryForward(14, floatPtr(10)))
	assert.Equal(t, 0.5, CarryForward(0.5, floatPtr(10)))
}
