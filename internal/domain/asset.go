package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetType classifies a digital asset.
type AssetType string

// Possible asset types
const (
	AssetTypeDomain       AssetType = "Domain"
	AssetTypeSubscription AssetType = "Subscription"
	AssetTypeLicense      AssetType = "License"
	AssetTypeWarranty     AssetType = "Warranty"
	AssetTypeCertificate  AssetType = "Certificate"
	AssetTypeOther        AssetType = "Other"
)

// AssetStatus represents the lifecycle state of a digital asset. The core
// never transitions it automatically; there is no background expiry sweep
// and status changes only by explicit command.
type AssetStatus string

// Possible asset status values
const (
	AssetStatusActive    AssetStatus = "active"
	AssetStatusExpired   AssetStatus = "expired"
	AssetStatusCancelled AssetStatus = "cancelled"
)

// DefaultAssetCategory is applied when a new asset is created without one.
const DefaultAssetCategory = "Personal"

// DigitalAsset is a long-lived tracked possession such as a domain name,
// subscription, or license. Identifier holds an asset-specific handle
// (domain name, serial number) and Metadata free-form notes; both are
// optional, as are the expiry and remind timestamps.
type DigitalAsset struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Type         AssetType   `json:"type"`
	Category     string      `json:"category"`
	Identifier   string      `json:"identifier,omitempty"`
	Metadata     string      `json:"metadata,omitempty"`
	ExpiresAt    *time.Time  `json:"expires_at,omitempty"`
	RemindAt     *time.Time  `json:"remind_at,omitempty"`
	Status       AssetStatus `json:"status"`
	DisplayOrder int         `json:"display_order"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewDigitalAsset creates a new active DigitalAsset with a generated ID
// and fresh timestamps. An empty category defaults to "Personal".
// Returns an error only if the type is not a known value.
func NewDigitalAsset(
	title string,
	assetType AssetType,
	category string,
	identifier string,
	metadata string,
	expiresAt *time.Time,
	remindAt *time.Time,
) (*DigitalAsset, error) {
	if !IsValidAssetType(assetType) {
		return nil, ErrInvalidAssetType
	}
	if category == "" {
		category = DefaultAssetCategory
	}

	now := time.Now().UTC()
	return &DigitalAsset{
		ID:           uuid.New(),
		Title:        title,
		Type:         assetType,
		Category:     category,
		Identifier:   identifier,
		Metadata:     metadata,
		ExpiresAt:    expiresAt,
		RemindAt:     remindAt,
		Status:       AssetStatusActive,
		DisplayOrder: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Touch refreshes the update timestamp.
func (a *DigitalAsset) Touch() {
	a.UpdatedAt = time.Now().UTC()
}

// Validate checks the DigitalAsset's type constraints.
func (a *DigitalAsset) Validate() error {
	if a.ID == uuid.Nil {
		return ErrInvalidID
	}
	if !IsValidAssetType(a.Type) {
		return ErrInvalidAssetType
	}
	if !IsValidAssetStatus(a.Status) {
		return ErrInvalidAssetStatus
	}
	return nil
}

// IsValidAssetType reports whether t is a known AssetType.
func IsValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeDomain, AssetTypeSubscription, AssetTypeLicense,
		AssetTypeWarranty, AssetTypeCertificate, AssetTypeOther:
		return true
	default:
		return false
	}
}

// IsValidAssetStatus reports whether status is a known AssetStatus.
func IsValidAssetStatus(status AssetStatus) bool {
	switch status {
	case AssetStatusActive, AssetStatusExpired, AssetStatusCancelled:
		return true
	default:
		return false
	}
}
