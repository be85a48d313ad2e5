package routes

import (
	"net/http"
	"strconv"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/services/notify"

	"github.com/go-chi/chi/v5"
)

// NotifyRoutes exposes the one-shot alert workflow, admin only.
func NotifyRoutes(svc *notify.Service, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))
	r.Use(middlewares.RequireAdmin)

	r.Get("/{vin}", handleJSON(func(r *http.Request) (any, int, error) {
		vin := chi.URLParam(r, "vin")
		already, err := svc.Notify(r.Context(), vin)
		if err != nil {
			return nil, statusFor(err), err
		}
		status := "notified"
		if already {
			status = "already_notified"
		}
		return map[string]string{"vin": vin, "status": status}, http.StatusOK, nil
	}))
	return r
}

// AuditRoutes lists the audit trail, admin only, newest first.
func AuditRoutes(ctrl *controllers.AuditController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))
	r.Use(middlewares.RequireAdmin)

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := ctrl.List(r.Context(), limit)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]any{"entries": entries}, http.StatusOK, nil
	}))
	return r
}
