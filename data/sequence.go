package data

import (
	"github.com/BaSui01/corpusflow/types"
)

// SliceOptions configures SliceSequence.
type SliceOptions[T any] struct {
	// PadLast pads the trailing window with PadVal instead of dropping it.
	PadLast bool
	// PadVal is the sentinel appended when PadLast is set. Its type
	// should match the tokens; that is the caller's responsibility.
	PadVal T
	// Overlap is the number of items shared between consecutive windows.
	Overlap int
}

// SliceSequence slices a flat sequence of tokens into windows of exactly
// length items each, with consecutive windows sharing opts.Overlap items.
// A trailing run of tokens too short to fill a window is dropped, unless
// opts.PadLast is set, in which case the sequence is extended with copies
// of opts.PadVal so that no token is lost.
//
// The returned windows are subslices of the (possibly pad-extended)
// sequence; the input itself is never mutated.
func SliceSequence[T any](sequence []T, length int, opts SliceOptions[T]) ([][]T, error) {
	if length <= opts.Overlap {
		return nil, types.NewError(types.ErrInvalidArgument, "length must exceed overlap")
	}

	step := length - opts.Overlap

	if opts.PadLast {
		padLen, err := SlicePadLength(len(sequence), length, opts.Overlap)
		if err != nil {
			return nil, err
		}
		if padLen > 0 {
			padded := make([]T, 0, len(sequence)+padLen)
			padded = append(padded, sequence...)
			for i := 0; i < padLen; i++ {
				padded = append(padded, opts.PadVal)
			}
			sequence = padded
		}
	}

	// A sequence shorter than one window yields no windows at all.
	if len(sequence) < length {
		return [][]T{}, nil
	}

	numWindows := (len(sequence)-length)/step + 1
	windows := make([][]T, 0, numWindows)
	for i := 0; i < numWindows; i++ {
		start := i * step
		windows = append(windows, sequence[start:start+length])
	}
	return windows, nil
}

// SlicePadLength returns the number of pad items that must be appended
// to a sequence of numItems tokens so that slicing it with the given
// length and overlap discards nothing. A non-empty sequence shorter
// than length is padded up to exactly one full window; an empty
// sequence needs no padding.
func SlicePadLength(numItems, length, overlap int) (int, error) {
	if length <= overlap {
		return 0, types.NewError(types.ErrInvalidArgument, "length must exceed overlap")
	}
	if numItems == 0 {
		return 0, nil
	}

	step := length - overlap
	span := numItems - length
	if span < 0 {
		return -span, nil
	}
	residual := span % step
	if residual != 0 {
		return step - residual, nil
	}
	return 0, nil
}

// ConcatSequence flattens sequences of tokens into a single sequence,
// dropping zero-valued tokens (empty strings, zero IDs).
func ConcatSequence[T comparable](sequences [][]T) []T {
	var zero T
	total := 0
	for _, seq := range sequences {
		total += len(seq)
	}
	flat := make([]T, 0, total)
	for _, seq := range sequences {
		for _, tok := range seq {
			if tok != zero {
				flat = append(flat, tok)
			}
		}
	}
	return flat
}
