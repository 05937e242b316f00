// Package data provides dataset-preparation utilities: slicing flat
// token sequences into fixed-length overlapping windows, frequency
// counting, lookup tables with a fall-back value, string splitting
// helpers, and train/validation splitting of in-memory datasets.
package data
