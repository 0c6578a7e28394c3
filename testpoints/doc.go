// Package testpoints generates reproducible point clouds for benchmarks
// and property tests across index, front, and archive. It adapts
// builder's functional-options configuration style (builder/config.go,
// builder/options.go) from graph construction to spatial point
// generation: an unexported config carries the value range and RNG,
// Options mutate it, and newConfig applies defaults then options in
// order. Dimension and count are arguments of the generators.
package testpoints
