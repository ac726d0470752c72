// Package data defines the immutable value and transaction-result types for
// the Slate state core. A mutation attempt against a state holder is recorded
// as a Result: an outcome kind plus ordered lists of the values that were
// successfully applied, replaced, or rejected. Results are built through a
// single-use Builder and are immutable once built.
package data
