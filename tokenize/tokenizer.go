package tokenize

import (
	"fmt"
	"sync"
)

// Tokenizer converts raw text into tokens for the data utilities.
type Tokenizer interface {
	// CountTokens returns the number of tokens in text.
	CountTokens(text string) (int, error)

	// Encode converts text into a list of token IDs.
	Encode(text string) ([]int, error)

	// Decode converts token IDs back into text.
	Decode(tokens []int) (string, error)

	// Name returns the tokenizer's name.
	Name() string
}

// Global tokenizer registry, keyed by encoding name.
var (
	encTokenizers   = make(map[string]Tokenizer)
	encTokenizersMu sync.RWMutex
)

// Register registers a tokenizer for the given encoding name.
func Register(encoding string, t Tokenizer) {
	encTokenizersMu.Lock()
	defer encTokenizersMu.Unlock()
	encTokenizers[encoding] = t
}

// Get returns the tokenizer registered for the given encoding name.
func Get(encoding string) (Tokenizer, error) {
	encTokenizersMu.RLock()
	defer encTokenizersMu.RUnlock()

	if t, ok := encTokenizers[encoding]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("no tokenizer registered for encoding: %s", encoding)
}

// GetOrEstimator returns the registered tokenizer for the encoding,
// falling back to a character-ratio estimator when none is registered.
func GetOrEstimator(encoding string) Tokenizer {
	t, err := Get(encoding)
	if err != nil {
		return NewEstimator()
	}
	return t
}
