package objects

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/simfactory/pkg/export"
)

// NewHandler returns an HTTP handler exposing the objects returned by list
// via GET /api/objects. The optional family query parameter filters the
// result.
func NewHandler(list func() []export.ObjectRecord) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		entries := export.Filter(list(), r.URL.Query().Get("family"))
		if entries == nil {
			entries = []export.ObjectRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
