package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/services/notify"
	"fleetwatch/fleetwatch/services/responder"
	"fleetwatch/fleetwatch/services/risk"
	"fleetwatch/fleetwatch/sources/psql"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"
	"fleetwatch/fleetwatch/utils/logging"
	"fleetwatch/fleetwatch/utils/types"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendBookingConfirmation(to string, appt models.ServiceAppointment) error {
	m.sent = append(m.sent, to)
	return nil
}

type testApp struct {
	srv  *httptest.Server
	db   *gorm.DB
	cfg  config.Config
	mail *recordingMailer
}

// The fixture model keys the probability off error_count alone:
// z = -1 + 0.5*error_count, so VIN1002 (6 errors) scores High and
// VIN1001 (0 errors) scores Low.
func testModel(t *testing.T) *risk.Model {
	m, err := risk.New(risk.Artifact{
		Version:      "test",
		Features:     []string{"age", "mileage", "engine_temp", "error_count"},
		Coefficients: []float64{0, 0, 0, 0.5},
		Intercept:    -1,
	}, 0)
	if err != nil {
		t.Fatalf("test model: %v", err)
	}
	return m
}

func setupTestApp(t *testing.T) *testApp {
	logging.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		return string(h)
	}
	users := []models.User{
		{Username: "admin", PasswordHash: hash("admin123"), Role: models.RoleAdmin},
		{Username: "alice", PasswordHash: hash("alice123"), Role: models.RoleCustomer, VIN: "VIN1001"},
		{Username: "bob", PasswordHash: hash("bob123"), Role: models.RoleCustomer, VIN: "VIN1002"},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	vehicles := []models.Vehicle{
		{VIN: "VIN1001", Age: 3, Mileage: 42000, EngineTemp: 92, ErrorCount: 0},
		{VIN: "VIN1002", Age: 9, Mileage: 160000, EngineTemp: 111, ErrorCount: 6},
	}
	if err := db.Create(&vehicles).Error; err != nil {
		t.Fatalf("seed vehicles: %v", err)
	}

	cfg := config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour}
	mail := &recordingMailer{}

	userDAO := dao.NewUserDAO(db)
	vehicleDAO := dao.NewVehicleDAO(db)
	apptDAO := dao.NewAppointmentDAO(db)
	chatDAO := dao.NewChatMessageDAO(db)
	auditDAO := dao.NewAuditLogDAO(db)

	authCtrl := controllers.NewAuthController(userDAO, auditDAO, cfg)
	vehicleCtrl := controllers.NewVehicleController(vehicleDAO, testModel(t))
	schedCtrl := controllers.NewScheduleController(apptDAO, vehicleDAO, auditDAO, mail)
	chatCtrl := controllers.NewChatController(chatDAO, auditDAO, vehicleCtrl, responder.New())
	auditCtrl := controllers.NewAuditController(auditDAO)
	notifySvc := notify.NewService(db)

	r := chi.NewRouter()
	r.Mount("/schedule", ScheduleRoutes(schedCtrl, cfg))
	r.Mount("/chat", ChatRoutes(chatCtrl, cfg))
	r.Mount("/notify", NotifyRoutes(notifySvc, cfg))
	r.Mount("/audit-logs", AuditRoutes(auditCtrl, cfg))
	r.Mount("/", SiteRoutes(authCtrl, vehicleCtrl, schedCtrl, cfg))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testApp{srv: srv, db: db, cfg: cfg, mail: mail}
}

// noRedirectClient lets tests assert on 303s instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (app *testApp) login(t *testing.T, username, password string) types.LoginResponse {
	body, _ := json.Marshal(types.LoginRequest{Username: username, Password: password})
	resp, err := http.Post(app.srv.URL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	var out types.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func (app *testApp) request(t *testing.T, method, path, token string, payload any) *http.Response {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, app.srv.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := noRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
