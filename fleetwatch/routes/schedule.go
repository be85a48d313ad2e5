package routes

import (
	"net/http"
	"strconv"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/utils/types"

	"github.com/go-chi/chi/v5"
)

func ScheduleRoutes(ctrl *controllers.ScheduleController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/{vin}", handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			vin := chi.URLParam(r, "vin")
			if !a.CanAccessVIN(vin) {
				return nil, http.StatusForbidden, controllers.ErrForbiddenVIN
			}
			form, err := ctrl.GetForm(r.Context(), vin)
			if err != nil {
				return nil, statusFor(err), err
			}
			return form, http.StatusOK, nil
		}))

		gr.Post("/{vin}", func(w http.ResponseWriter, r *http.Request) {
			a, _ := middlewares.FromContext(r.Context())
			vin := chi.URLParam(r, "vin")
			if !a.CanAccessVIN(vin) {
				http.Error(w, controllers.ErrForbiddenVIN.Error(), http.StatusForbidden)
				return
			}
			var req types.BookingRequest
			err := decodeBody(r, &req, func(form func(string) string) {
				req.ServiceCenter = form("service_center")
				req.ServiceDate = form("service_date")
				req.ServiceTime = form("service_time")
				req.Email = form("email")
				if cost, err := strconv.ParseFloat(form("cost"), 64); err == nil {
					req.Cost = cost
				}
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			appt, err := ctrl.Book(r.Context(), a, vin, req)
			if err != nil {
				http.Error(w, err.Error(), statusFor(err))
				return
			}
			if wantsHTML(r) {
				http.Redirect(w, r, "/confirmation", http.StatusSeeOther)
				return
			}
			handleJSON(func(*http.Request) (any, int, error) {
				return appt, http.StatusCreated, nil
			})(w, r)
		})
	})
	return r
}
