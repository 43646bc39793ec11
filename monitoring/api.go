package monitoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// apiFunc serves the value it returns as JSON. An *apiError picks the
// status code of a failure; other errors are internal.
type apiFunc func(r *http.Request) (any, error)

type apiError struct {
	code int
	msg  string
}

func (e *apiError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return &apiError{
		code: http.StatusBadRequest,
		msg:  fmt.Sprintf(format, args...),
	}
}

func notFound(what string) error {
	return &apiError{code: http.StatusNotFound, msg: what + " not found"}
}

func (f apiFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v, err := f(r)
	if err != nil {
		code := http.StatusInternalServerError

		var aerr *apiError
		if errors.As(err, &aerr) {
			code = aerr.code
		}

		http.Error(w, err.Error(), code)

		return
	}

	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(buf); err != nil {
		log.Printf("monitor: write response: %v", err)
	}
}
