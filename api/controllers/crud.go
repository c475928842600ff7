package controllers

import (
	"context"
	"net/http"

	"github.com/tracelabs/assetbook-backend/api/responses"
	"github.com/tracelabs/assetbook-backend/api/validators"
	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
	"github.com/tracelabs/assetbook-backend/pkg/logger"
)

type crudService[D, I, P any] interface {
	List(ctx context.Context) ([]D, error)
	Get(ctx context.Context, id uint) (*D, error)
	Create(ctx context.Context, input I) (*D, error)
	Replace(ctx context.Context, id uint, input I) (*D, error)
	Patch(ctx context.Context, id uint, input P) (*D, error)
	Delete(ctx context.Context, id uint) error
}

// CRUD produces the standard handler set for a resource whose service
// follows the uniform list/get/create/replace/patch/delete contract. Assets
// are the exception (distinct list and detail projections) and keep
// dedicated handlers.
type CRUD[D, I, P any] struct {
	Svc   crudService[D, I, P]
	Logg  *logger.Logger
	Label string
}

func (c CRUD[D, I, P]) unavailable(w http.ResponseWriter, r *http.Request) bool {
	if c.Svc == nil {
		responses.WriteError(r.Context(), c.Logg, w, pkgerrors.New(pkgerrors.CodeInternal, c.Label+" service unavailable"))
		return true
	}
	return false
}

// List returns every record.
func (c CRUD[D, I, P]) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		out, err := c.Svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// Get returns one record by id.
func (c CRUD[D, I, P]) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		out, err := c.Svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// Create inserts a new record.
func (c CRUD[D, I, P]) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		var payload I
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		out, err := c.Svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

// Replace rewrites every field of a record.
func (c CRUD[D, I, P]) Replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		var payload I
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		out, err := c.Svc.Replace(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// Patch updates the provided fields of a record.
func (c CRUD[D, I, P]) Patch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		var payload P
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		out, err := c.Svc.Patch(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// Delete removes a record (and whatever its delete cascades to).
func (c CRUD[D, I, P]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.unavailable(w, r) {
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		if err := c.Svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), c.Logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
