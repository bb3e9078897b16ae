// Package packages turns a package's source tree into a types.Package.
//
// Every regular file (or symlink) under the source directory becomes a file
// link at the same relative destination. Files named in the ignored list
// (".keep" by default) are never linked: their containing directory becomes
// a directory anchor instead, so it is created in the mount even when it
// holds nothing else.
//
// The dotfiles option renames destinations: when set for all entries, each
// top-level name gets a leading "."; when given a list, only the listed
// source-relative paths do. Renaming a directory renames everything below it.
package packages
