package dynamics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/echosim/internal/entropy"
)

func TestParseDistribution(t *testing.T) {
	for _, tag := range []string{"normal", "laplace", "vonmises", "uniform"} {
		dist, err := ParseDistribution(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, Distribution(tag), dist)
	}

	_, err := ParseDistribution("beta")
	assert.ErrorIs(t, err, ErrUnsupportedDistribution)
}

func TestSampleAttitudesBounds(t *testing.T) {
	cases := []struct {
		name string
		dist Distribution
		a, b float64
	}{
		{"normal", DistNormal, 0, 0.3},
		{"laplace", DistLaplace, 0.2, 0.5},
		{"vonmises", DistVonMises, 0, 2},
		{"uniform", DistUniform, -3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := entropy.NewSource(21)
			att, err := SampleAttitudes(src, 500, tc.dist, tc.a, tc.b)
			require.NoError(t, err)
			require.Len(t, att, 500)
			for i, v := range att {
				assert.GreaterOrEqual(t, v, -AttitudeBound, "index %d", i)
				assert.LessOrEqual(t, v, AttitudeBound, "index %d", i)
			}
		})
	}
}

func TestSampleAttitudesClipsWideScale(t *testing.T) {
	// A huge scale puts nearly all mass outside the bound, so clipping
	// piles samples on both boundary values.
	src := entropy.NewSource(23)
	att, err := SampleAttitudes(src, 200, DistNormal, 0, 1000)
	require.NoError(t, err)

	var hi, lo int
	for _, v := range att {
		switch v {
		case AttitudeBound:
			hi++
		case -AttitudeBound:
			lo++
		}
	}
	assert.Greater(t, hi, 0)
	assert.Greater(t, lo, 0)
}

func TestSampleAttitudesDeterminism(t *testing.T) {
	a, err := SampleAttitudes(entropy.NewSource(31), 64, DistLaplace, 0, 0.4)
	require.NoError(t, err)
	b, err := SampleAttitudes(entropy.NewSource(31), 64, DistLaplace, 0, 0.4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleAttitudesUnknownDistribution(t *testing.T) {
	src := entropy.NewSource(1)
	_, err := SampleAttitudes(src, 10, Distribution("triangular"), 0, 1)
	assert.ErrorIs(t, err, ErrUnsupportedDistribution)
}
