// Package filesystem provides filesystem implementations for toolkit.
//
// It contains implementations of the types.FS interface (the OS filesystem
// and an afero-backed one) and the Adapter, which exposes the primitive
// operations the link reconciler needs: path type tests, symlink
// create/read/remove, recursive directory creation, empty directory removal
// and sorted directory listing.
package filesystem
