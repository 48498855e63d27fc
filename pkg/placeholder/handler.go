package placeholder

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vimg/internal/errors"
)

// Handler returns an http.Handler serving placeholders:
//
//	GET /placeholders/{key...}              JSON Placeholder
//	GET /placeholders/{key...}?format=jpeg  the blurred JPEG
//
// Mount it on a router: r.Mount("/", placeholder.Handler(svc)).
func Handler(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/placeholders/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")

		p, err := svc.Get(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}

		switch r.URL.Query().Get("format") {
		case "", "json":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(p)
		case "jpeg", "jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", strconv.Itoa(len(p.JPEG)))
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Write(p.JPEG)
		default:
			http.Error(w, "Unsupported format", http.StatusBadRequest)
		}
	})
	return r
}

// writeError writes a coded error as a JSON body and anything else as
// plain status text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(e.FormatJSON()))
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
