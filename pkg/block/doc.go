// Package block defines the property schema and immutable state model for
// block types. A Metadata registry binds a block type to the properties it
// legally carries; a State is an immutable snapshot of one value per
// registered property. Every mutation-shaped operation on a State is pure:
// it returns a new snapshot and never alters its receiver.
package block
