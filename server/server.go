// Package server provides a REST server giving access to NHI identifier
// validation, suitable for use by form renderers needing server-side
// validation or client-side input pattern hints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"

	"github.com/hauora/nhi/identifiers"
	"github.com/hauora/nhi/nhi"
)

func init() {
	identifiers.Register("NHI", identifiers.NHI)
	identifiers.Register("HPI-Person", identifiers.HPIPerson)
	identifiers.Register("HPI-Organisation", identifiers.HPIOrganisation)
	identifiers.Register("HPI-Facility", identifiers.HPIFacility)
	identifiers.RegisterValidator(identifiers.NHI, func(ctx context.Context, value string) (string, error) {
		return nhi.Validate(value)
	})
}

// App represents the NHI validation server
type App struct {
	Router       *mux.Router
	Cache        *cache.Cache // may be nil if not caching
	SkipChecksum bool         // validate structure only; intended for test environments
}

// RegisterRoutes installs the server's routes on its router.
// Routes are matched against the encoded path so that a URL-escaped system
// URI survives as a single path segment rather than being redirected away.
func (app *App) RegisterRoutes() {
	app.Router.UseEncodedPath()
	app.Router.HandleFunc("/v1/nhi/{nhi}", app.ValidateNHI).Methods("GET")
	app.Router.HandleFunc("/v1/validate/{system}/{value}", app.ValidateIdentifier).Methods("GET")
	app.Router.HandleFunc("/v1/systems", app.ListSystems).Methods("GET")
}

// Result is the outcome of validating a single identifier
type Result struct {
	Value      string `json:"value"`                // the identifier as received
	Normalized string `json:"normalized"`           // canonical uppercase form; persist this, not the original
	Format     string `json:"format,omitempty"`     // "legacy" or "current"
	Pattern    string `json:"pattern,omitempty"`    // client-side input hint for the detected format
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`      // "pattern-mismatch" or "checksum-invalid"
	Message    string `json:"message,omitempty"`
}

// ValidateNHI handles a request to validate a single NHI identifier
func (app *App) ValidateNHI(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["nhi"]
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	normalized := nhi.Normalize(raw)
	if app.Cache != nil {
		if cached, found := app.Cache.Get(normalized); found {
			result := cached.(Result)
			result.Value = raw // the cache is keyed by normalized form; echo this request's raw value
			writeResult(w, result)
			return
		}
	}
	result := Result{
		Value:      raw,
		Normalized: normalized,
	}
	if format := nhi.DetectFormat(normalized); format != nhi.FormatUnknown {
		result.Format = format.String()
		result.Pattern = format.Pattern()
	}
	var err error
	if app.SkipChecksum {
		_, err = nhi.ValidatePattern(normalized)
	} else {
		_, err = nhi.Validate(normalized)
	}
	if err != nil {
		result.Error = errorKind(err)
		result.Message = err.Error()
	} else {
		result.Valid = true
	}
	log.Printf("server: (%s) validate nhi '%s': valid:%v %s", requestID, normalized, result.Valid, result.Error)
	if app.Cache != nil {
		app.Cache.Set(normalized, result, cache.DefaultExpiration)
	}
	writeResult(w, result)
}

// ValidateIdentifier handles a request to validate an arbitrary system/value
// tuple via the identifiers registry. The system may be given as a URL-escaped
// URI or as a registered name such as "nhi".
func (app *App) ValidateIdentifier(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	name := params["system"]
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	system, found := identifiers.LookupSystem(name)
	if !found {
		log.Printf("server: (%s) validate: unknown system '%s'", requestID, name)
		http.Error(w, "unknown identifier system: "+name, http.StatusNotFound)
		return
	}
	result := Result{Value: params["value"]}
	normalized, err := identifiers.Validate(r.Context(), system.URI, params["value"])
	if errors.Is(err, identifiers.ErrNoValidator) {
		log.Printf("server: (%s) validate: no validator for '%s'", requestID, system.URI)
		http.Error(w, "no validator for identifier system: "+system.URI, http.StatusNotImplemented)
		return
	}
	if err != nil {
		result.Normalized = nhi.Normalize(params["value"])
		result.Error = errorKind(err)
		result.Message = err.Error()
	} else {
		result.Normalized = normalized
		result.Valid = true
	}
	log.Printf("server: (%s) validate '%s|%s': valid:%v", requestID, system.URI, params["value"], result.Valid)
	writeResult(w, result)
}

// ListSystems returns the identifier systems known to this server
func (app *App) ListSystems(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(identifiers.ListSystems()); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}

func errorKind(err error) string {
	if errors.Is(err, nhi.ErrChecksumInvalid) {
		return "checksum-invalid"
	}
	return "pattern-mismatch"
}

func writeResult(w http.ResponseWriter, result Result) {
	w.Header().Set("Content-Type", "application/json")
	if !result.Valid {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}
