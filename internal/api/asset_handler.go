package api

import (
	"net/http"

	"github.com/phrazzld/nudge-api/internal/api/shared"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/service"
)

// AssetHandler handles digital-asset HTTP requests. Mutations respond
// with the full refreshed asset list.
type AssetHandler struct {
	trackerService service.TrackerService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(trackerService service.TrackerService) *AssetHandler {
	return &AssetHandler{trackerService: trackerService}
}

// ListAssets handles GET /api/assets requests.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	h.respondWithAssets(w, r, http.StatusOK)
}

// CreateAsset handles POST /api/assets requests.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.trackerService.CreateAsset(r.Context(), assetParamsFromRequest(req)); err != nil {
		HandleAPIError(w, r, err, "Failed to create asset")
		return
	}

	h.respondWithAssets(w, r, http.StatusCreated)
}

// UpdateAsset handles PUT /api/assets/{id} requests.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AssetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.trackerService.UpdateAsset(r.Context(), id, assetParamsFromRequest(req)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithAssets(w, r, http.StatusOK)
}

// UpdateStatus handles PATCH /api/assets/{id}/status requests. Asset
// status only moves by this explicit command.
func (h *AssetHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateAssetStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.trackerService.UpdateAssetStatus(r.Context(), id, domain.AssetStatus(req.Status)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithAssets(w, r, http.StatusOK)
}

// DeleteAsset handles DELETE /api/assets/{id} requests. Deleting an
// absent asset still succeeds.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.DeleteAsset(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete asset")
		return
	}

	h.respondWithAssets(w, r, http.StatusOK)
}

// BatchDeleteAssets handles POST /api/assets/batch-delete requests.
func (h *AssetHandler) BatchDeleteAssets(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.DeleteAssets(r.Context(), req.IDs); err != nil {
		HandleAPIError(w, r, err, "Failed to delete assets")
		return
	}

	h.respondWithAssets(w, r, http.StatusOK)
}

// ReorderAssets handles POST /api/assets/reorder requests.
func (h *AssetHandler) ReorderAssets(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.ReorderAssets(r.Context(), req.IDs); err != nil {
		HandleAPIError(w, r, err, "Failed to reorder assets")
		return
	}

	h.respondWithAssets(w, r, http.StatusOK)
}

// respondWithAssets loads the full asset list and writes it with the
// given status code.
func (h *AssetHandler) respondWithAssets(w http.ResponseWriter, r *http.Request, status int) {
	assets, err := h.trackerService.ListAssets(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list assets")
		return
	}
	shared.RespondWithJSON(w, r, status, assetsToDTOResponse(assets))
}

// assetParamsFromRequest converts an AssetRequest to service params.
func assetParamsFromRequest(req AssetRequest) service.AssetParams {
	return service.AssetParams{
		Title:      req.Title,
		Type:       domain.AssetType(req.Type),
		Category:   req.Category,
		Identifier: req.Identifier,
		Metadata:   req.Metadata,
		ExpiresAt:  req.ExpiresAt,
		RemindAt:   req.RemindAt,
	}
}
