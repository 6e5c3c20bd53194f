package ml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrainTestSplit_Partition(t *testing.T) {
	labels := make([]int, 100)
	for i := range labels {
		labels[i] = i % 5
	}

	train, test, err := TrainTestSplit(labels, 0.2, 42)
	require.NoError(t, err)
	require.Len(t, train, 80)
	require.Len(t, test, 20)

	// Every index appears exactly once across the two partitions.
	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		require.False(t, seen[i], "index %d appears twice", i)
		seen[i] = true
	}
	require.Len(t, seen, 100)
}

func TestTrainTestSplit_Stratified(t *testing.T) {
	// 40 samples of class 0, 10 of class 1.
	labels := make([]int, 50)
	for i := 40; i < 50; i++ {
		labels[i] = 1
	}

	_, test, err := TrainTestSplit(labels, 0.2, 7)
	require.NoError(t, err)

	counts := map[int]int{}
	for _, i := range test {
		counts[labels[i]]++
	}
	require.Equal(t, 8, counts[0])
	require.Equal(t, 2, counts[1], "minority class must appear in the test set")
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	labels := make([]int, 60)
	for i := range labels {
		labels[i] = i % 3
	}

	train1, test1, err := TrainTestSplit(labels, 0.25, 99)
	require.NoError(t, err)
	train2, test2, err := TrainTestSplit(labels, 0.25, 99)
	require.NoError(t, err)

	require.Equal(t, train1, train2)
	require.Equal(t, test1, test2)

	_, test3, err := TrainTestSplit(labels, 0.25, 100)
	require.NoError(t, err)
	require.NotEqual(t, test1, test3, "different seeds should shuffle differently")
}

func TestTrainTestSplit_TinyClassStillInTest(t *testing.T) {
	// A class with 2 samples and test_frac 0.1 still contributes one
	// test sample.
	labels := []int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1}

	_, test, err := TrainTestSplit(labels, 0.1, 1)
	require.NoError(t, err)

	found := false
	for _, i := range test {
		if labels[i] == 1 {
			found = true
		}
	}
	require.True(t, found)
}

func TestTrainTestSplit_InvalidInput(t *testing.T) {
	_, _, err := TrainTestSplit([]int{0}, 0.2, 1)
	require.Error(t, err)

	labels := []int{0, 1, 0, 1}
	_, _, err = TrainTestSplit(labels, 0, 1)
	require.Error(t, err)
	_, _, err = TrainTestSplit(labels, 1, 1)
	require.Error(t, err)
}
