// Package dispatch fans event notifications out to recipients.
//
// Two dispatchers share one delivery pipeline: the broadcast dispatcher
// resolves the active subscriber list and announces new or updated events,
// and the confirmation dispatcher sends photographers signed confirmation
// links for a specific event.
//
// A failed send never aborts the batch. Every recipient gets a result, the
// results keep input order, and the batch succeeds when at least one
// message went out.
package dispatch
