package domain

import (
	"strings"
	"time"
)

// SubscriberStatus enumerates the states a subscriber can be in.
type SubscriberStatus string

const (
	SubscriberSubscribed   SubscriberStatus = "subscribed"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// DefaultLanguage is used when a subscriber's language preference is
// absent or unrecognized.
const DefaultLanguage = "en"

// SupportedLanguages lists the content variants the renderer ships with.
var SupportedLanguages = map[string]bool{
	"en": true,
	"de": true,
	"fr": true,
}

// Subscriber represents a single email recipient on the announcement list.
// Unsubscribing transitions Status; records are never hard-deleted.
type Subscriber struct {
	Email          string           `json:"email" db:"email"`
	Language       string           `json:"language" db:"language"`
	Status         SubscriberStatus `json:"status" db:"status"`
	SubscribedAt   time.Time        `json:"subscribed_at" db:"subscribed_at"`
	UnsubscribedAt *time.Time       `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// NormalizeEmail lowercases and trims an address. Every store lookup and
// every exclusion-set comparison goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeLanguage maps a raw language tag to a supported variant,
// falling back to DefaultLanguage. Region subtags are dropped ("de-AT" → "de").
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if SupportedLanguages[lang] {
		return lang
	}
	return DefaultLanguage
}

// ValidateEmail performs basic email validation
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 3 || len(email) > 254 {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}

	local, dom := parts[0], parts[1]
	if len(local) == 0 || len(local) > 64 {
		return false
	}
	if len(dom) == 0 || len(dom) > 253 {
		return false
	}
	if !strings.Contains(dom, ".") {
		return false
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	return true
}
