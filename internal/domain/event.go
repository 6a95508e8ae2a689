package domain

import "time"

// Event carries the fields of a published shoot event that notifications
// reference. The full event document lives in the site's document store;
// dispatchers only see this projection.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// Photographer identifies one invitee for a confirmation dispatch.
type Photographer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
