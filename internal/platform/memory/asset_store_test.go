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

func newTestAsset(t *testing.T, title string) *domain.DigitalAsset {
	t.Helper()
	asset, err := domain.NewDigitalAsset(title, domain.AssetTypeSubscription, "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("failed to create asset: %v", err)
	}
	return asset
}

func TestAssetStoreSaveAndGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	as := NewAssetStore(NewStore())

	asset := newTestAsset(t, "Spotify")
	if err := as.Save(ctx, asset); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := as.GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != asset.Title {
		t.Errorf("Expected title %q, got %q", asset.Title, got.Title)
	}

	_, err = as.GetByID(ctx, uuid.New())
	if !errors.Is(err, store.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetStoreUpdateMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	as := NewAssetStore(NewStore())

	asset := newTestAsset(t, "Never saved")
	if err := as.Update(ctx, asset); !errors.Is(err, store.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetStoreGetAllOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	as := NewAssetStore(NewStore())

	first := newTestAsset(t, "first created")
	time.Sleep(time.Millisecond)
	second := newTestAsset(t, "second created")
	pushed := newTestAsset(t, "pushed to front")
	pushed.DisplayOrder = -1

	for _, a := range []*domain.DigitalAsset{second, first, pushed} {
		if err := as.Save(ctx, a); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := as.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	wantTitles := []string{"pushed to front", "first created", "second created"}
	if len(got) != len(wantTitles) {
		t.Fatalf("Expected %d assets, got %d", len(wantTitles), len(got))
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("Expected position %d to be %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestAssetStoreReorder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	as := NewAssetStore(NewStore())

	a := newTestAsset(t, "A")
	b := newTestAsset(t, "B")
	c := newTestAsset(t, "C")
	for _, asset := range []*domain.DigitalAsset{a, b, c} {
		if err := as.Save(ctx, asset); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	if err := as.Reorder(ctx, []uuid.UUID{b.ID, c.ID, a.ID}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	got, err := as.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	wantTitles := []string{"B", "C", "A"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("Expected position %d to be %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestAssetStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	as := NewAssetStore(NewStore())

	asset := newTestAsset(t, "transient")
	if err := as.Save(ctx, asset); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := as.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := as.Delete(ctx, asset.ID); err != nil {
		t.Errorf("Expected repeated delete to succeed, got %v", err)
	}
}
