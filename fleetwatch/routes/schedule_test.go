package routes

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"fleetwatch/fleetwatch/controllers"
	"fleetwatch/fleetwatch/sources/psql/models"
	"fleetwatch/fleetwatch/utils/types"
)

func TestScheduleFormEstimate(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "alice", "alice123").Token

	resp := app.request(t, "GET", "/schedule/VIN1001", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var form types.BookingForm
	decodeJSON(t, resp, &form)
	if form.CostEstimate != controllers.AverageCostEstimate {
		t.Errorf("cost estimate = %v, want %v", form.CostEstimate, controllers.AverageCostEstimate)
	}
}

func TestBookingFlow(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "alice", "alice123").Token

	resp := app.request(t, "POST", "/schedule/VIN1001", token, types.BookingRequest{
		ServiceCenter: "Downtown Motors",
		ServiceDate:   "2026-09-15",
		ServiceTime:   "10:30",
		Email:         "alice@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var appt models.ServiceAppointment
	decodeJSON(t, resp, &appt)
	if appt.Status != models.AppointmentStatusScheduled {
		t.Errorf("status = %q, want Scheduled", appt.Status)
	}
	if appt.Cost != controllers.AverageCostEstimate {
		t.Errorf("cost = %v, want the default estimate", appt.Cost)
	}

	// The customer's own listing contains exactly the booked row.
	listResp := app.request(t, "GET", "/appointments", token, nil)
	var out struct {
		Appointments []models.ServiceAppointment `json:"appointments"`
	}
	decodeJSON(t, listResp, &out)
	if len(out.Appointments) != 1 {
		t.Fatalf("appointments = %d, want 1", len(out.Appointments))
	}
	got := out.Appointments[0]
	if got.VIN != "VIN1001" || got.Status != models.AppointmentStatusScheduled || got.ServiceCenter != "Downtown Motors" {
		t.Errorf("listed appointment = %+v", got)
	}

	var count int64
	app.db.Model(&models.AuditLog{}).
		Where("action = ? AND vin = ?", models.ActionServiceBooked, "VIN1001").Count(&count)
	if count != 1 {
		t.Errorf("SERVICE_BOOKED audit entries = %d, want 1", count)
	}

	if len(app.mail.sent) != 1 || app.mail.sent[0] != "alice@example.com" {
		t.Errorf("confirmation recipients = %v", app.mail.sent)
	}
}

func TestBookingWithoutEmailSkipsMail(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "alice", "alice123").Token

	resp := app.request(t, "POST", "/schedule/VIN1001", token, types.BookingRequest{
		ServiceCenter: "Downtown Motors",
		ServiceDate:   "2026-09-15",
		ServiceTime:   "10:30",
	})
	resp.Body.Close()
	if len(app.mail.sent) != 0 {
		t.Errorf("no email expected, got %v", app.mail.sent)
	}
}

func TestBrowserBookingRedirectsToConfirmation(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "alice", "alice123").Token

	form := url.Values{}
	form.Set("service_center", "Downtown Motors")
	form.Set("service_date", "2026-09-15")
	form.Set("service_time", "10:30")
	form.Set("cost", "5200")

	req, err := http.NewRequest("POST", app.srv.URL+"/schedule/VIN1001", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := noRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/confirmation" {
		t.Errorf("redirect = %q, want /confirmation", loc)
	}

	var appt models.ServiceAppointment
	if err := app.db.Where("vin = ?", "VIN1001").First(&appt).Error; err != nil {
		t.Fatalf("load appointment: %v", err)
	}
	if appt.Cost != 5200 {
		t.Errorf("form cost = %v, want 5200", appt.Cost)
	}
}

func TestScheduleCrossVINForbidden(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "alice", "alice123").Token

	resp := app.request(t, "POST", "/schedule/VIN1002", token, types.BookingRequest{ServiceCenter: "X"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestScheduleUnknownVIN(t *testing.T) {
	app := setupTestApp(t)
	token := app.login(t, "admin", "admin123").Token

	resp := app.request(t, "GET", "/schedule/NOPE", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
