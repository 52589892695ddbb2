package health

import "net/http"

// Liveness reports that the process is running. It always answers "ALIVE"
// with 200 OK and checks no dependencies.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ALIVE"))
}

// NoContent answers 204 without a body.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
