// Package types defines the core data model shared by the catalog, the
// persisted state and the link reconciler: Package, LinkTarget, LinkMap and
// the Event stream, plus the FS interface every filesystem implementation
// satisfies.
package types
