// Package slate exposes build-level information about the module.
package slate

// Version is the semantic version of the slate module.
const Version = "0.1.0"
