package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

// pathID reads the {id} route parameter as a positive integer.
func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer")
	}
	return uint(value), nil
}
