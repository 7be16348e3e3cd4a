package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

func newTestLog(t *testing.T, title string, occurredAt time.Time) *domain.LifeLog {
	t.Helper()
	log, err := domain.NewLifeLog(title, domain.LogCategoryMisc, occurredAt, "")
	if err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	return log
}

func TestLogStoreSaveAndGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ls := NewLogStore(NewStore())

	log := newTestLog(t, "Changed air filter", time.Now().UTC())
	if err := ls.Save(ctx, log); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := ls.GetByID(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != log.Title {
		t.Errorf("Expected title %q, got %q", log.Title, got.Title)
	}

	_, err = ls.GetByID(ctx, uuid.New())
	if !errors.Is(err, store.ErrLogNotFound) {
		t.Errorf("Expected ErrLogNotFound, got %v", err)
	}
}

func TestLogStoreUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ls := NewLogStore(NewStore())

	log := newTestLog(t, "Original title", time.Now().UTC())
	if err := ls.Save(ctx, log); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	log.Title = "Edited title"
	log.Touch()
	if err := ls.Update(ctx, log); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := ls.GetByID(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Edited title" {
		t.Errorf("Expected edited title, got %q", got.Title)
	}

	missing := newTestLog(t, "Never saved", time.Now().UTC())
	if err := ls.Update(ctx, missing); !errors.Is(err, store.ErrLogNotFound) {
		t.Errorf("Expected ErrLogNotFound, got %v", err)
	}
}

func TestLogStoreGetAllOrdersByOccurredAtDesc(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ls := NewLogStore(NewStore())
	now := time.Now().UTC()

	oldest := newTestLog(t, "oldest", now.Add(-48*time.Hour))
	middle := newTestLog(t, "middle", now.Add(-24*time.Hour))
	newest := newTestLog(t, "newest", now)

	for _, l := range []*domain.LifeLog{middle, newest, oldest} {
		if err := ls.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := ls.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	wantTitles := []string{"newest", "middle", "oldest"}
	if len(got) != len(wantTitles) {
		t.Fatalf("Expected %d logs, got %d", len(wantTitles), len(got))
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("Expected position %d to be %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestLogStoreGetRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ls := NewLogStore(NewStore())
	now := time.Now().UTC()

	for i := 0; i < 7; i++ {
		log := newTestLog(t, "entry", now.Add(-time.Duration(i)*time.Hour))
		if err := ls.Save(ctx, log); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := ls.GetRecent(ctx, 5)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 logs, got %d", len(got))
	}

	got, err = ls.GetRecent(ctx, 100)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(got) != 7 {
		t.Errorf("Expected all 7 logs, got %d", len(got))
	}
}

func TestLogStoreDeleteMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ls := NewLogStore(NewStore())
	now := time.Now().UTC()

	a := newTestLog(t, "a", now)
	b := newTestLog(t, "b", now)
	c := newTestLog(t, "c", now)
	for _, l := range []*domain.LifeLog{a, b, c} {
		if err := ls.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	// A batch mixing known and unknown IDs removes the known ones.
	if err := ls.DeleteMany(ctx, []uuid.UUID{a.ID, uuid.New(), c.ID}); err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}

	got, err := ls.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("Expected only b to remain, got %d logs", len(got))
	}
}
