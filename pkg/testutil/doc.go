// Package testutil provides utilities for testing toolkit components.
//
// Key components:
//   - MemoryFS: in-memory filesystem with real symlink nodes, used by the
//     reconciler tests
//   - FS helpers: CreateFileT, CreateDirT, CreateSymlinkT and matching
//     assertions that work against any types.FS
//   - PackageBuilder: declarative types.Package setup
//   - TestSet: on-disk package set with a manifest, for catalog tests
//
// All test data is defined inline. Each test gets its own filesystem.
package testutil
