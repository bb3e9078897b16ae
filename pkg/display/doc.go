// Package display renders the reconciler's event stream and inspection
// results for people (plain text or coloured terminal output) and for
// machines (JSON lines). Nothing here is read by the reconciler; it only
// sees the Printer through the types.EventSink interface.
package display
