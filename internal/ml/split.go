package ml

import (
	"fmt"
	"math/rand"
	"sort"
)

// TrainTestSplit partitions n samples into train and test index sets using a
// stratified shuffle: each class contributes testFrac of its samples to the
// test set, so rare classes are represented in both partitions. The split is
// deterministic for a fixed seed.
func TrainTestSplit(labels []int, testFrac float64, seed int64) (trainIdx, testIdx []int, err error) {
	n := len(labels)
	if n < 2 {
		return nil, nil, fmt.Errorf("train/test split: need at least 2 samples, got %d", n)
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, fmt.Errorf("train/test split: test fraction must be in (0, 1), got %g", testFrac)
	}

	byClass := make(map[int][]int)
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}

	classes := make([]int, 0, len(byClass))
	for y := range byClass {
		classes = append(classes, y)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, y := range classes {
		idx := byClass[y]
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})

		nTest := int(float64(len(idx)) * testFrac)
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}

		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, nil, fmt.Errorf("train/test split: empty partition (n=%d, test_frac=%g)", n, testFrac)
	}
	return trainIdx, testIdx, nil
}
