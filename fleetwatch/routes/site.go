package routes

import (
	"net/http"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/utils/types"

	"github.com/go-chi/chi/v5"
)

// SiteRoutes carries the top-level dashboard surface: login/logout, the
// scored vehicle listings and the static confirmation endpoint.
func SiteRoutes(authCtrl *controllers.AuthController, vehicleCtrl *controllers.VehicleController, schedCtrl *controllers.ScheduleController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Get("/login", handleJSON(func(r *http.Request) (any, int, error) {
		return map[string]string{"page": "login"}, http.StatusOK, nil
	}))

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		err := decodeBody(r, &req, func(form func(string) string) {
			req.Username = form("username")
			req.Password = form("password")
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		token, user, err := authCtrl.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     middlewares.SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(cfg.SessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		if wantsHTML(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		handleJSON(func(*http.Request) (any, int, error) {
			return types.LoginResponse{Token: token, Role: user.Role, VIN: user.VIN}, http.StatusOK, nil
		})(w, r)
	})

	r.Get("/confirmation", handleJSON(func(r *http.Request) (any, int, error) {
		return map[string]string{"message": "Your service appointment has been booked."}, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			a, _ := middlewares.FromContext(r.Context())
			if !a.IsAdmin() {
				http.Redirect(w, r, "/chat/"+a.VIN, http.StatusSeeOther)
				return
			}
			handleJSON(func(r *http.Request) (any, int, error) {
				scored, err := vehicleCtrl.ListScored(r.Context(), a)
				if err != nil {
					return nil, http.StatusInternalServerError, err
				}
				return map[string]any{"vehicles": scored}, http.StatusOK, nil
			})(w, r)
		})

		gr.Get("/logout", func(w http.ResponseWriter, r *http.Request) {
			a, _ := middlewares.FromContext(r.Context())
			if err := authCtrl.Logout(r.Context(), a); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     middlewares.SessionCookie,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
			})
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})

		listScored := handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			scored, err := vehicleCtrl.ListScored(r.Context(), a)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return map[string]any{"vehicles": scored}, http.StatusOK, nil
		})
		gr.Get("/vehicle-health", listScored)
		gr.Get("/predictions", listScored)

		gr.Get("/reports", handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			summary, scored, err := vehicleCtrl.Report(r.Context(), a)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return map[string]any{"summary": summary, "vehicles": scored}, http.StatusOK, nil
		}))

		gr.Get("/appointments", handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			appts, err := schedCtrl.ListAppointments(r.Context(), a)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return map[string]any{"appointments": appts}, http.StatusOK, nil
		}))
	})

	return r
}
