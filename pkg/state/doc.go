// Package state persists what toolkit did on its last run: the installed
// (active) package set, the user's selection overrides and the LinkMap of
// every path it manages in the mount. The file is YAML and is replaced
// atomically on save.
package state
