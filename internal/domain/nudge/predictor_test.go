package nudge

import (
	"testing"
	"time"

	"github.com/phrazzld/nudge-api/internal/domain"
)

func mustLog(t *testing.T, title string, notes string, occurredAt time.Time) *domain.LifeLog {
	t.Helper()
	log, err := domain.NewLifeLog(title, domain.LogCategoryMisc, occurredAt, notes)
	if err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	return log
}

func TestPredict(t *testing.T) {
	t.Parallel()
	occurredAt := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		title     string
		notes     string
		wantTitle string
		wantDueAt time.Time
	}{
		{
			name:      "annual renewal keyword in title",
			title:     "Renewed car insurance",
			wantTitle: "Renew: Renewed car insurance",
			wantDueAt: time.Date(2025, 3, 8, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "semiannual keyword in title",
			title:     "Oil change at the garage",
			wantTitle: "Due: Oil change at the garage",
			wantDueAt: time.Date(2024, 9, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "quarterly keyword in title",
			title:     "Replaced the water filter",
			wantTitle: "Check: Replaced the water filter",
			wantDueAt: time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "keyword match is case-insensitive",
			title:     "ANNUAL checkup booked",
			wantTitle: "Renew: ANNUAL checkup booked",
			wantDueAt: time.Date(2025, 3, 8, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "keyword in notes triggers a match",
			title:     "Car stuff",
			notes:     "dentist said come back",
			wantTitle: "Due: Car stuff",
			wantDueAt: time.Date(2024, 9, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Predict(mustLog(t, tc.title, tc.notes, occurredAt))
			if got == nil {
				t.Fatal("Expected a suggestion, got nil")
			}
			if got.Title != tc.wantTitle {
				t.Errorf("Expected title %q, got %q", tc.wantTitle, got.Title)
			}
			if !got.DueAt.Equal(tc.wantDueAt) {
				t.Errorf("Expected due date %v, got %v", tc.wantDueAt, got.DueAt)
			}
		})
	}
}

func TestPredictNoMatch(t *testing.T) {
	t.Parallel()
	log := mustLog(t, "Had lunch with friends", "", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	if got := Predict(log); got != nil {
		t.Errorf("Expected nil suggestion, got %+v", got)
	}
}

func TestPredictRulePriority(t *testing.T) {
	t.Parallel()
	// "renew" and "service" both appear; the annual rule wins because it
	// is evaluated first.
	occurredAt := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	log := mustLog(t, "Renew service contract", "", occurredAt)

	got := Predict(log)
	if got == nil {
		t.Fatal("Expected a suggestion, got nil")
	}
	if got.Title != "Renew: Renew service contract" {
		t.Errorf("Expected the annual rule to win, got title %q", got.Title)
	}
	want := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, got.DueAt)
	}
}

func TestPredictMonthOverflowNormalizes(t *testing.T) {
	t.Parallel()
	// Jan 31 + 6 months lands on Jul 31 directly; Aug 31 + 6 months has
	// no Feb 31 and normalizes to Mar 2/3 depending on leap years. Both
	// follow time.AddDate semantics.
	log := mustLog(t, "Oil change", "", time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC))
	got := Predict(log)
	if got == nil {
		t.Fatal("Expected a suggestion, got nil")
	}
	want := time.Date(2024, 7, 31, 8, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, got.DueAt)
	}

	log = mustLog(t, "Oil change", "", time.Date(2024, 8, 31, 8, 0, 0, 0, time.UTC))
	got = Predict(log)
	if got == nil {
		t.Fatal("Expected a suggestion, got nil")
	}
	// 2024-08-31 + 6 months = 2025-02-31, normalized to 2025-03-03.
	want = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, got.DueAt)
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	t.Parallel()
	log := mustLog(t, "Renewed home insurance", "", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	first := Predict(log)
	if first == nil {
		t.Fatal("Expected a suggestion, got nil")
	}
	for i := 0; i < 10; i++ {
		again := Predict(log)
		if again == nil || again.Title != first.Title || !again.DueAt.Equal(first.DueAt) {
			t.Fatalf("Expected identical suggestion on run %d, got %+v", i, again)
		}
	}
}
