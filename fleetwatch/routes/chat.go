package routes

import (
	"encoding/json"
	"net/http"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/{vin}", handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			vin := chi.URLParam(r, "vin")
			if !a.CanAccessVIN(vin) {
				return nil, http.StatusForbidden, controllers.ErrForbiddenVIN
			}
			history, err := ctrl.History(r.Context(), vin)
			if err != nil {
				return nil, statusFor(err), err
			}
			return history, http.StatusOK, nil
		}))

		gr.Post("/{vin}", handleJSON(func(r *http.Request) (any, int, error) {
			a, _ := middlewares.FromContext(r.Context())
			vin := chi.URLParam(r, "vin")
			if !a.CanAccessVIN(vin) {
				return nil, http.StatusForbidden, controllers.ErrForbiddenVIN
			}
			var req types.ChatRequest
			err := decodeBody(r, &req, func(form func(string) string) {
				req.Message = form("message")
			})
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			resp, err := ctrl.Send(r.Context(), a, vin, req.Message)
			if err != nil {
				return nil, statusFor(err), err
			}
			return resp, http.StatusOK, nil
		}))
	})

	// Websocket chat: first frame authenticates, then each text frame is a
	// message answered with the full reply payload.
	r.HandleFunc("/{vin}/ws", func(w http.ResponseWriter, r *http.Request) {
		vin := chi.URLParam(r, "vin")
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var hello struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(data, &hello); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}
		a, err := middlewares.ParseToken(hello.Token, cfg.JWTSecret)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		if !a.CanAccessVIN(vin) {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"forbidden"}`))
			conn.Close(websocket.StatusPolicyViolation, "forbidden")
			return
		}

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			var req types.ChatRequest
			if err := json.Unmarshal(data, &req); err != nil {
				conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
				continue
			}
			resp, err := ctrl.Send(ctx, a, vin, req.Message)
			if err != nil {
				conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
				continue
			}
			payload, err := json.Marshal(resp)
			if err != nil {
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				return
			}
		}
	})
	return r
}
