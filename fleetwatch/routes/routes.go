package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/services/notify"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// statusFor maps controller errors onto the response taxonomy: bad
// credentials 401, unknown VIN 404, everything else is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, controllers.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, controllers.ErrVehicleNotFound),
		errors.Is(err, notify.ErrVehicleNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// decodeBody accepts JSON or a classic form post for browser-facing
// endpoints. formFill copies form fields into the target when the request
// is not JSON.
func decodeBody(r *http.Request, target any, formFill func(form func(string) string)) error {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(target)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	formFill(r.FormValue)
	return nil
}
