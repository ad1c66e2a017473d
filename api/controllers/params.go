package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/electrostorehq/backend/api/validators"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/pagination"
)

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// pageParams reads the standard offset paging query parameters.
func pageParams(r *http.Request) (pagination.Params, error) {
	pageNumber, err := validators.ParseQueryInt(r, "pageNumber", 0, 0, 1<<20)
	if err != nil {
		return pagination.Params{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return pagination.Params{}, err
	}

	q := r.URL.Query()
	return pagination.Params{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortBy:     validators.SanitizeString(q.Get("sortBy"), 64),
		SortDir:    validators.SanitizeString(q.Get("sortDir"), 8),
	}, nil
}

// chiURLParam is a thin wrapper so controllers avoid importing chi directly
// in every file.
func chiURLParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// imageFromForm extracts the multipart "image" file from an upload request.
func imageFromForm(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required")
	}
	return file, header, nil
}

// streamImage copies image bytes to the response with a generic content type.
func streamImage(w http.ResponseWriter, img io.Reader) {
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = io.Copy(w, img)
}
