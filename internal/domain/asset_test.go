package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewDigitalAsset(t *testing.T) {
	t.Parallel()
	expiresAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	remindAt := expiresAt.AddDate(0, 0, -14)

	asset, err := NewDigitalAsset(
		"example.com",
		AssetTypeDomain,
		"Work",
		"registrar: example registrar",
		"auto-renew off",
		&expiresAt,
		&remindAt,
	)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if asset.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if asset.Type != AssetTypeDomain {
		t.Errorf("Expected type %s, got %s", AssetTypeDomain, asset.Type)
	}

	if asset.Category != "Work" {
		t.Errorf("Expected category %q, got %q", "Work", asset.Category)
	}

	if asset.Status != AssetStatusActive {
		t.Errorf("Expected status %s, got %s", AssetStatusActive, asset.Status)
	}

	if asset.ExpiresAt == nil || !asset.ExpiresAt.Equal(expiresAt) {
		t.Errorf("Expected expiresAt %v, got %v", expiresAt, asset.ExpiresAt)
	}

	if asset.RemindAt == nil || !asset.RemindAt.Equal(remindAt) {
		t.Errorf("Expected remindAt %v, got %v", remindAt, asset.RemindAt)
	}

	if asset.CreatedAt.IsZero() || asset.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewDigitalAssetDefaultsAndErrors(t *testing.T) {
	t.Parallel()
	asset, err := NewDigitalAsset("Netflix", AssetTypeSubscription, "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if asset.Category != DefaultAssetCategory {
		t.Errorf("Expected default category %q, got %q", DefaultAssetCategory, asset.Category)
	}
	if asset.ExpiresAt != nil || asset.RemindAt != nil {
		t.Error("Expected nil expiry fields")
	}

	_, err = NewDigitalAsset("Something", "Gadget", "", "", "", nil, nil)
	if err != ErrInvalidAssetType {
		t.Errorf("Expected error %v, got %v", ErrInvalidAssetType, err)
	}
}

func TestDigitalAssetValidate(t *testing.T) {
	t.Parallel()
	validAsset := DigitalAsset{
		ID:       uuid.New(),
		Title:    "GoLand license",
		Type:     AssetTypeLicense,
		Category: "Work",
		Status:   AssetStatusActive,
	}

	if err := validAsset.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidAsset := validAsset
	invalidAsset.ID = uuid.Nil
	if err := invalidAsset.Validate(); err != ErrInvalidID {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	invalidAsset = validAsset
	invalidAsset.Type = "Gadget"
	if err := invalidAsset.Validate(); err != ErrInvalidAssetType {
		t.Errorf("Expected error %v, got %v", ErrInvalidAssetType, err)
	}
}

func TestIsValidAssetTypeAndStatus(t *testing.T) {
	t.Parallel()
	validTypes := []AssetType{
		AssetTypeDomain,
		AssetTypeSubscription,
		AssetTypeLicense,
		AssetTypeWarranty,
		AssetTypeCertificate,
		AssetTypeOther,
	}
	for _, at := range validTypes {
		if !IsValidAssetType(at) {
			t.Errorf("Expected type %s to be valid", at)
		}
	}
	if IsValidAssetType("domain") {
		t.Error("Expected lowercase type to be invalid")
	}

	validStatuses := []AssetStatus{AssetStatusActive, AssetStatusExpired, AssetStatusCancelled}
	for _, s := range validStatuses {
		if !IsValidAssetStatus(s) {
			t.Errorf("Expected status %s to be valid", s)
		}
	}
	if IsValidAssetStatus("archived") {
		t.Error("Expected unknown status to be invalid")
	}
}
