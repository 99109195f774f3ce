package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travelpal/internal/domain"
)

// pathUUID binds the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}

// tripStopIDs binds both {tripId} and {stopId}.
func tripStopIDs(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	stopID, err := pathUUID(r, "stopId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tripID, stopID, nil
}

// queryString binds an optional string query parameter; absent yields "".
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// pagination binds ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func pagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, errors.New("invalid page: must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, errors.New("invalid limit: must be an integer")
	}
	return domain.NewPaginationParams(page, limit), nil
}

// decodeBody decodes a JSON request body into dst and validates it.
// Returns the HTTP status to answer with when it fails.
func decodeBody(r *http.Request, dst any) (int, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return http.StatusUnprocessableEntity, errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, errors.New("request body too large")
		}
		return http.StatusBadRequest, fmt.Errorf("malformed JSON body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return http.StatusUnprocessableEntity, validationMessage(err)
	}
	return 0, nil
}
