// internal/app/features/domains/handler.go
package domains

import (
	"encoding/json"
	"errors"
	"net/http"

	domainstore "github.com/dalemusser/domainhub/internal/app/store/domains"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the domains feature.
// It holds the Mongo database and the logger so the various handlers
// (list, tree, pricing, reparent, delete) share the same core deps.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	Domains *domainstore.Store
}

// NewHandler constructs a new domains Handler. It is typically called
// from the bootstrap BuildHandler function, where the application's
// DB and logger are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Domains: domainstore.New(db),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into dst and reports malformed input
// as a 400 so callers can bail with a plain return.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// urlID parses the {id} route parameter as an ObjectID.
func urlID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid domain id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeStatus maps store errors onto HTTP status codes: validation
// failures are 400, missing documents 404, blocked deletes 409.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, domainstore.ErrParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainstore.ErrNameRequired),
		errors.Is(err, domainstore.ErrBadPricing),
		errors.Is(err, domainstore.ErrCycle):
		return http.StatusBadRequest
	case errors.Is(err, domainstore.ErrHasChildren),
		errors.Is(err, domainstore.ErrHasAssignments):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the error and writes the mapped JSON error response.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := storeStatus(err)
	if status == http.StatusInternalServerError {
		h.Log.Error(op+" failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
