// Package domain contains the shared types for the notification service:
// subscribers, events, and photographer invitees. It has no dependencies on
// persistence or transport and is imported by every service package.
package domain
