// Package subscriber implements the subscriber lifecycle service.
//
// This is the single source of truth for who receives event broadcasts.
// Subscribers enter through the public subscribe endpoint, leave through
// unsubscribe links, and are snapshotted by the dispatcher when a broadcast
// resolves its recipient list.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// net/http or database/sql directly.
package subscriber
