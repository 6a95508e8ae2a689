package render

// templateSet holds the Liquid sources for one message kind in one language.
type templateSet struct {
	Subject string
	HTML    string
	Text    string
	lang    string
}

// templates holds the built-in message templates. German and French variants
// exist for subscriber-facing messages; confirmation invites to photographers
// are English only.
var templates = map[Kind]map[string]templateSet{
	KindNewEvent: {
		"en": {
			Subject: `New event: {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>A new photography event has been announced.</p>
<p><strong>When:</strong> {{ event_date }}<br>
<strong>Where:</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">View event details</a></p>`,
			Text: `{{ event_title }}

A new photography event has been announced.

When: {{ event_date }}
Where: {{ event_location }}

{{ event_description }}

View event details: {{ event_url }}`,
		},
		"de": {
			Subject: `Neue Veranstaltung: {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>Eine neue Fotoveranstaltung wurde angekündigt.</p>
<p><strong>Wann:</strong> {{ event_date }}<br>
<strong>Wo:</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">Details ansehen</a></p>`,
			Text: `{{ event_title }}

Eine neue Fotoveranstaltung wurde angekündigt.

Wann: {{ event_date }}
Wo: {{ event_location }}

{{ event_description }}

Details ansehen: {{ event_url }}`,
		},
		"fr": {
			Subject: `Nouvel événement : {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>Un nouvel événement photo a été annoncé.</p>
<p><strong>Quand :</strong> {{ event_date }}<br>
<strong>Où :</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">Voir les détails</a></p>`,
			Text: `{{ event_title }}

Un nouvel événement photo a été annoncé.

Quand : {{ event_date }}
Où : {{ event_location }}

{{ event_description }}

Voir les détails : {{ event_url }}`,
		},
	},
	KindEventUpdate: {
		"en": {
			Subject: `Updated: {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>An event you follow has been updated.</p>
<p><strong>When:</strong> {{ event_date }}<br>
<strong>Where:</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">See what changed</a></p>`,
			Text: `{{ event_title }}

An event you follow has been updated.

When: {{ event_date }}
Where: {{ event_location }}

{{ event_description }}

See what changed: {{ event_url }}`,
		},
		"de": {
			Subject: `Aktualisiert: {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>Eine Veranstaltung wurde aktualisiert.</p>
<p><strong>Wann:</strong> {{ event_date }}<br>
<strong>Wo:</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">Änderungen ansehen</a></p>`,
			Text: `{{ event_title }}

Eine Veranstaltung wurde aktualisiert.

Wann: {{ event_date }}
Wo: {{ event_location }}

{{ event_description }}

Änderungen ansehen: {{ event_url }}`,
		},
		"fr": {
			Subject: `Mis à jour : {{ event_title }}`,
			HTML: `<h2>{{ event_title }}</h2>
<p>Un événement que vous suivez a été mis à jour.</p>
<p><strong>Quand :</strong> {{ event_date }}<br>
<strong>Où :</strong> {{ event_location }}</p>
<p>{{ event_description }}</p>
<p><a href="{{ event_url }}">Voir les changements</a></p>`,
			Text: `{{ event_title }}

Un événement que vous suivez a été mis à jour.

Quand : {{ event_date }}
Où : {{ event_location }}

{{ event_description }}

Voir les changements : {{ event_url }}`,
		},
	},
	KindConfirmInvite: {
		"en": {
			Subject: `Confirm your spot: {{ event_title }}`,
			HTML: `<p>Hi {{ photographer_name | default: "there" }},</p>
<p>You have been invited to photograph <strong>{{ event_title }}</strong>.</p>
<p><strong>When:</strong> {{ event_date }}<br>
<strong>Where:</strong> {{ event_location }}</p>
<p><a href="{{ confirm_url }}">Confirm your participation</a></p>
<p>If the link does not work, copy this address into your browser:<br>
{{ confirm_url }}</p>`,
			Text: `Hi {{ photographer_name | default: "there" }},

You have been invited to photograph {{ event_title }}.

When: {{ event_date }}
Where: {{ event_location }}

Confirm your participation: {{ confirm_url }}`,
		},
	},
}
