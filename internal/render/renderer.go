// Package render produces per-language email content from Liquid templates.
// Each message kind has subject, HTML and plain-text variants per language,
// falling back to English when a language variant is missing.
package render

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"

	"github.com/shutterfest/notify/internal/domain"
)

// Kind identifies a message template set.
type Kind string

const (
	KindNewEvent      Kind = "new_event"
	KindEventUpdate   Kind = "event_update"
	KindConfirmInvite Kind = "confirmation_invite"
)

// Message is a fully rendered email payload.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer renders message templates with caching of parsed templates.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewRenderer creates a Renderer with domain filters registered.
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()

	// {{ first_name | default: "there" }}
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		if s := fmt.Sprintf("%v", value); s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	return &Renderer{engine: engine}
}

// Render produces the message for the given kind and language. An unknown
// language renders the English variant. ctx carries the template variables,
// typically built with EventContext.
func (r *Renderer) Render(kind Kind, lang string, ctx map[string]interface{}) (*Message, error) {
	set, err := r.lookup(kind, lang)
	if err != nil {
		return nil, err
	}

	subject, err := r.render(string(kind)+"/"+set.lang+"/subject", set.Subject, ctx)
	if err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	html, err := r.render(string(kind)+"/"+set.lang+"/html", set.HTML, ctx)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	text, err := r.render(string(kind)+"/"+set.lang+"/text", set.Text, ctx)
	if err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}

	return &Message{Subject: subject, HTML: html, Text: text}, nil
}

func (r *Renderer) lookup(kind Kind, lang string) (templateSet, error) {
	byLang, ok := templates[kind]
	if !ok {
		return templateSet{}, fmt.Errorf("unknown message kind %q", kind)
	}
	lang = domain.NormalizeLanguage(lang)
	set, ok := byLang[lang]
	if !ok {
		set = byLang[domain.DefaultLanguage]
		set.lang = domain.DefaultLanguage
		return set, nil
	}
	set.lang = lang
	return set, nil
}

func (r *Renderer) render(cacheKey, source string, ctx map[string]interface{}) (string, error) {
	if cached, ok := r.cache.Load(cacheKey); ok {
		return cached.(*liquid.Template).RenderString(ctx)
	}
	tpl, err := r.engine.ParseString(source)
	if err != nil {
		return "", err
	}
	r.cache.Store(cacheKey, tpl)
	return tpl.RenderString(ctx)
}

// EventContext builds the template variables for an event message.
func EventContext(event domain.Event) map[string]interface{} {
	return map[string]interface{}{
		"event_title":       event.Title,
		"event_date":        event.Date.Format("Monday, 2 January 2006"),
		"event_location":    event.Location,
		"event_description": event.Description,
		"event_url":         event.URL,
	}
}

// ConfirmContext builds the template variables for a confirmation invite.
func ConfirmContext(event domain.Event, photographer domain.Photographer, confirmURL string) map[string]interface{} {
	ctx := EventContext(event)
	ctx["photographer_name"] = photographer.Name
	ctx["confirm_url"] = confirmURL
	return ctx
}
