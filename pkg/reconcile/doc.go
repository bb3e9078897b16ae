// Package reconcile makes the mount match the active packages.
//
// A run has four phases, always in this order:
//
//  1. Resolve the active set from package defaults and selection overrides.
//  2. Plan: compute the desired LinkMap from the active packages, sorted by
//     name then destination. The first claim on a path wins; incompatible
//     later claims are reported as conflicts. No I/O.
//  3. Sync: apply the plan to the filesystem, creating directories and
//     symlinks and replacing wrong symlinks. Anything in the way that the
//     engine did not create is reported as a conflict and left alone.
//  4. Cleanup: remove symlinks recorded by the previous run that are no
//     longer wanted, then prune directories left empty, never going above
//     the mount.
//
// The active set and the new LinkMap are then persisted. Running again with
// the same inputs produces only unchanged events.
package reconcile
