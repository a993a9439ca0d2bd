// internal/app/features/assignments/handler.go
package assignments

import (
	"encoding/json"
	"errors"
	"net/http"

	assignmentstore "github.com/dalemusser/domainhub/internal/app/store/assignments"
	domainstore "github.com/dalemusser/domainhub/internal/app/store/domains"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the assignments feature:
// the contact↔domain edges, their status lifecycle, and the joined listings.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	Assignments *assignmentstore.Store
	Domains     *domainstore.Store
}

// NewHandler constructs a new assignments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Assignments: assignmentstore.New(db),
		Domains:     domainstore.New(db),
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

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// urlObjectID parses a named route parameter as an ObjectID.
func urlObjectID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, assignmentstore.ErrDomainNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, assignmentstore.ErrBadStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := storeStatus(err)
	if status == http.StatusInternalServerError {
		h.Log.Error(op+" failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
