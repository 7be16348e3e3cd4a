// Package nudge implements the prediction engine that inspects a logged
// life event and suggests a follow-up reminder with a computed due date.
//
// The engine is a rule-based classifier: the log's title and notes are
// concatenated, lowercased, and matched against keyword rules in fixed
// priority order. The first matching rule wins. Prediction is a pure
// function: no I/O, no side effects, deterministic for a given log.
package nudge

import (
	"strings"
	"time"

	"github.com/phrazzld/nudge-api/internal/domain"
)

// Suggestion is a proposed follow-up reminder for a logged event.
type Suggestion struct {
	Title string
	DueAt time.Time
}

// rule is a single classification rule. Keywords are matched with a plain
// substring test against the lowercased log text. Due computes the
// suggested due date from the log's occurrence time.
type rule struct {
	keywords    []string
	titlePrefix string
	due         func(occurredAt time.Time) time.Time
}

// rules are evaluated top to bottom; earlier rules take priority.
//
// Calendar arithmetic uses time.AddDate, which normalizes day-of-month
// overflow into the following month (Jan 31 + 1 month = Mar 2 or 3).
var rules = []rule{
	{
		// Annual renewals fire a week before the anniversary.
		keywords:    []string{"renew", "insurance", "annual"},
		titlePrefix: "Renew: ",
		due: func(occurredAt time.Time) time.Time {
			return occurredAt.AddDate(1, 0, 0).AddDate(0, 0, -7)
		},
	},
	{
		keywords:    []string{"service", "oil change", "dentist"},
		titlePrefix: "Due: ",
		due: func(occurredAt time.Time) time.Time {
			return occurredAt.AddDate(0, 6, 0)
		},
	},
	{
		keywords:    []string{"filter", "clean"},
		titlePrefix: "Check: ",
		due: func(occurredAt time.Time) time.Time {
			return occurredAt.AddDate(0, 3, 0)
		},
	},
}

// Predict returns a suggested follow-up reminder for the given log, or nil
// if no rule matches.
func Predict(log *domain.LifeLog) *Suggestion {
	text := strings.ToLower(log.Title + " " + log.Notes)

	for _, r := range rules {
		if matchesAny(text, r.keywords) {
			return &Suggestion{
				Title: r.titlePrefix + log.Title,
				DueAt: r.due(log.OccurredAt),
			}
		}
	}

	return nil
}

// matchesAny reports whether text contains at least one of the keywords.
func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
