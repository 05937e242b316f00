package data

import (
	"math"
	"math/rand"

	"github.com/BaSui01/corpusflow/types"
)

// Dataset is a simple in-memory dataset with list-like access.
type Dataset[T any] struct {
	items []T
}

// NewDataset wraps items in a Dataset. The slice is not copied.
func NewDataset[T any](items []T) *Dataset[T] {
	return &Dataset[T]{items: items}
}

// Len returns the number of samples.
func (d *Dataset[T]) Len() int {
	return len(d.items)
}

// Get returns the sample at index i.
func (d *Dataset[T]) Get(i int) T {
	return d.items[i]
}

// Items returns the underlying samples.
func (d *Dataset[T]) Items() []T {
	return d.items
}

// TrainValidSplit shuffles items and splits them into training and
// validation datasets. validRatio is the proportion of samples held out
// for validation, rounded up. rng may be nil, in which case the global
// math/rand source is used; pass a seeded source for reproducible
// splits.
func TrainValidSplit[T any](items []T, validRatio float64, rng *rand.Rand) (train, valid *Dataset[T], err error) {
	if validRatio < 0.0 || validRatio > 1.0 {
		return nil, nil, types.NewError(types.ErrInvalidArgument, "validRatio must be in [0, 1]")
	}

	n := len(items)
	numValid := int(math.Ceil(float64(n) * validRatio))

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	swap := func(i, j int) { indices[i], indices[j] = indices[j], indices[i] }
	if rng != nil {
		rng.Shuffle(n, swap)
	} else {
		rand.Shuffle(n, swap)
	}

	validItems := make([]T, 0, numValid)
	for i := 0; i < numValid; i++ {
		validItems = append(validItems, items[indices[i]])
	}
	trainItems := make([]T, 0, n-numValid)
	for i := numValid; i < n; i++ {
		trainItems = append(trainItems, items[indices[i]])
	}
	return NewDataset(trainItems), NewDataset(validItems), nil
}
