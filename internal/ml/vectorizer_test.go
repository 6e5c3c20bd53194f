package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitTransform(t *testing.T) {
	docs := []string{
		"shares climbed after strong earnings",
		"earnings beat expectations as shares rose",
		"vaccine trial shows promising results",
		"trial results published for new vaccine",
	}

	v := NewVectorizer()
	v.MinDF = 2

	x, err := v.FitTransform(docs)
	require.NoError(t, err)

	rows, cols := x.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, v.NumFeatures(), cols)
	require.Positive(t, cols)

	// Rows with matched terms are L2-normalized.
	for i := 0; i < rows; i++ {
		norm := 0.0
		for j := 0; j < cols; j++ {
			norm += x.At(i, j) * x.At(i, j)
		}
		require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "row %d not unit length", i)
	}
}

func TestVectorizer_Deterministic(t *testing.T) {
	docs := []string{
		"alpha beta gamma delta",
		"beta gamma delta epsilon",
		"gamma delta epsilon zeta",
	}

	v1 := NewVectorizer()
	v1.MinDF = 1
	x1, err := v1.FitTransform(docs)
	require.NoError(t, err)

	v2 := NewVectorizer()
	v2.MinDF = 1
	x2, err := v2.FitTransform(docs)
	require.NoError(t, err)

	require.Equal(t, x1.RawMatrix().Data, x2.RawMatrix().Data,
		"two fits over the same corpus must produce identical matrices")
}

func TestVectorizer_MinDFFiltersRareTerms(t *testing.T) {
	docs := []string{
		"common word appears everywhere",
		"common word appears here too",
		"common singleton",
	}

	v := NewVectorizer()
	v.MinDF = 2
	require.NoError(t, v.Fit(docs))

	_, hasCommon := v.vocab["common"]
	require.True(t, hasCommon)
	_, hasSingleton := v.vocab["singleton"]
	require.False(t, hasSingleton, "term below min_df must be dropped")
}

func TestVectorizer_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	docs := []string{
		"frequent frequent shared",
		"frequent shared rare1",
		"frequent shared rare2",
	}

	v := NewVectorizer()
	v.MinDF = 1
	v.MaxFeatures = 2
	require.NoError(t, v.Fit(docs))

	require.Equal(t, 2, v.NumFeatures())
	_, ok := v.vocab["frequent"]
	require.True(t, ok)
	_, ok = v.vocab["shared"]
	require.True(t, ok)
}

func TestVectorizer_TransformUnseenTermsIgnored(t *testing.T) {
	v := NewVectorizer()
	v.MinDF = 1
	require.NoError(t, v.Fit([]string{"known terms only", "known terms again"}))

	x, err := v.Transform([]string{"completely novel vocabulary"})
	require.NoError(t, err)

	rows, cols := x.Dims()
	require.Equal(t, 1, rows)
	for j := 0; j < cols; j++ {
		require.Zero(t, x.At(0, j))
	}
}

func TestVectorizer_TransformBeforeFit(t *testing.T) {
	v := NewVectorizer()
	_, err := v.Transform([]string{"doc"})
	require.Error(t, err)
}

func TestVectorizer_FitEmptyCorpus(t *testing.T) {
	v := NewVectorizer()
	require.Error(t, v.Fit(nil))
}
