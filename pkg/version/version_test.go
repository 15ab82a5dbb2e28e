package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want Result
	}{
		{"1.50", "1.5", Equal},
		{"1.00", "1.0", Equal},
		{"01.00", "1", Equal},
		{"1.00", "1.05", Less},
		{"2.0", "1.9", Greater},
		{"01.09", "01.10", Less},
		{" 1.02 ", "1.02", Equal},
		{"10.00", "9.99", Greater},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	pairs := [][2]string{{"1.00", "1.05"}, {"2.0", "1.9"}, {"1.5", "1.50"}}
	for _, p := range pairs {
		ab, err := Compare(p[0], p[1])
		require.NoError(t, err)
		ba, err := Compare(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, -ab, ba, "%s vs %s", p[0], p[1])
	}
}

func TestCompare_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"empty left", "", "1.0"},
		{"empty right", "1.0", "   "},
		{"text", "v1.0", "1.0"},
		{"dotted triple", "1.0.2", "1.0"},
		{"nan", "NaN", "1.0"},
		{"infinity", "1.0", "Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.a, tt.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidVersion)
			assert.ErrorIs(t, err, errutils.ErrFormat)
		})
	}
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "Result(7)", Result(7).String())
}
