package handler

import (
	"log"
	"net/http"

	_ "github.com/blackeffigyeel/exam-orch/internal/docs"
	"github.com/swaggo/swag"
)

// OpenAPI handles GET /api-docs/openapi.json
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		log.Printf("read api doc: %v", err)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
