package controllers

import (
	"net/http"

	"github.com/tracelabs/assetbook-backend/api/responses"
	"github.com/tracelabs/assetbook-backend/internal/vendors"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
)

// VendorsActive returns vendors whose active flag is set.
func VendorsActive(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}
		out, err := svc.Active(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
