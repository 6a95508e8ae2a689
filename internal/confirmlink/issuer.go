// Package confirmlink issues and verifies signed confirmation links for
// photographer event invitations. Links carry an HS256 JWT so the confirm
// endpoint can recover the event and photographer without a database lookup.
package confirmlink

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation, including expiry.
	ErrInvalidToken = errors.New("invalid confirmation token")
)

// Claims carried by a confirmation token.
type Claims struct {
	EventID        string `json:"evt"`
	PhotographerID string `json:"pgr"`
	jwtv5.RegisteredClaims
}

// Issuer signs confirmation tokens and builds the URLs embedded in
// photographer invitation emails.
type Issuer struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewIssuer creates an Issuer. baseURL is the confirm endpoint without a
// query string, e.g. "https://events.example.com/confirm".
func NewIssuer(secret, baseURL string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue signs a token binding the event and photographer and returns it.
func (i *Issuer) Issue(eventID, photographerID string) (string, error) {
	if eventID == "" || photographerID == "" {
		return "", fmt.Errorf("confirmlink: event and photographer IDs are required")
	}
	now := i.now().UTC()
	claims := Claims{
		EventID:        eventID,
		PhotographerID: photographerID,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "shutterfest-notify",
			Subject:   photographerID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tk.SignedString(i.secret)
}

// Link issues a token and returns the full confirmation URL.
func (i *Issuer) Link(eventID, photographerID string) (string, error) {
	token, err := i.Issue(eventID, photographerID)
	if err != nil {
		return "", err
	}
	return i.baseURL + "?token=" + url.QueryEscape(token), nil
}

// Verify validates a token and returns the event and photographer IDs it
// binds. Expired or tampered tokens return ErrInvalidToken.
func (i *Issuer) Verify(token string) (eventID, photographerID string, err error) {
	var claims Claims
	parsed, err := jwtv5.ParseWithClaims(token, &claims, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtv5.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.EventID == "" || claims.PhotographerID == "" {
		return "", "", ErrInvalidToken
	}
	return claims.EventID, claims.PhotographerID, nil
}
