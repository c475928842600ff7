package controllers

import (
	"net/http"

	"github.com/tracelabs/assetbook-backend/api/responses"
	"github.com/tracelabs/assetbook-backend/api/validators"
	"github.com/tracelabs/assetbook-backend/internal/maintenances"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
)

// MaintenancesByAsset returns an asset's maintenance history. asset_id is
// required; its absence is a caller error.
func MaintenancesByAsset(svc maintenances.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}
		assetID, err := validators.RequireQueryID(r, "asset_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.ByAsset(r.Context(), assetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
