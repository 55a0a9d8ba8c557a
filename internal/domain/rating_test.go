package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_EveryScorePairHasOneQuadrant(t *testing.T) {
	valid := map[Quadrant]bool{}
	for _, q := range Quadrants {
		valid[q] = true
	}
	for a := 1; a <= 10; a++ {
		for s := 1; s <= 10; s++ {
			q := Classify(a, s, DefaultMidpoint)
			assert.True(t, valid[q], "classify(%d,%d) returned %q", a, s, q)
			assert.Equal(t, q, Classify(a, s, DefaultMidpoint), "classify must be pure")
		}
	}
}

func TestClassify_TiesGoHigh(t *testing.T) {
	assert.Equal(t, HighAcuityHighStrategic, Classify(5, 5, 5))
	assert.Equal(t, HighAcuityLowStrategic, Classify(5, 4, 5))
	assert.Equal(t, LowAcuityHighStrategic, Classify(4, 5, 5))
	assert.Equal(t, LowAcuityLowStrategic, Classify(4, 4, 5))
}

func TestClassify_MidpointShiftsBoundary(t *testing.T) {
	assert.Equal(t, HighAcuityLowStrategic, Classify(8, 3, 5))
	assert.Equal(t, LowAcuityLowStrategic, Classify(8, 3, 9))
}

func TestSuggestFocal_OnlyHighAcuityLowStrategic(t *testing.T) {
	for _, q := range Quadrants {
		assert.Equal(t, q == HighAcuityLowStrategic, SuggestFocal(q), "quadrant %s", q)
	}
}

func TestScaleCheck_OutOfRange(t *testing.T) {
	err := DefaultScale.Check("acuity", 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, float64(11), oor.Value)
	assert.Equal(t, float64(1), oor.Min)
	assert.Equal(t, float64(10), oor.Max)

	assert.NoError(t, DefaultScale.Check("acuity", 1))
	assert.NoError(t, DefaultScale.Check("acuity", 10))
	assert.Error(t, DefaultScale.Check("acuity", 0))
}

func TestScaleValidate(t *testing.T) {
	assert.NoError(t, Scale{Min: 0, Max: 5}.Validate())
	assert.ErrorIs(t, Scale{Min: 5, Max: 5}.Validate(), ErrValidation)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("acuity")
	require.NoError(t, err)
	assert.Equal(t, AxisAcuity, a)

	s, err := ParseAxis("strategic")
	require.NoError(t, err)
	assert.Equal(t, AxisStrategicImportance, s)

	_, err = ParseAxis("impact")
	assert.ErrorIs(t, err, ErrValidation)
}
