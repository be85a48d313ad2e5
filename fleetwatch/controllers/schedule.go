package controllers

import (
	"context"

	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/services/mailer"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"
	"fleetwatch/fleetwatch/utils/logging"
	"fleetwatch/fleetwatch/utils/types"

	"go.uber.org/zap"
)

// AverageCostEstimate is the fixed figure shown on the booking form.
const AverageCostEstimate = 4500

type ScheduleController struct {
	apptDAO    *dao.AppointmentDAO
	vehicleDAO *dao.VehicleDAO
	auditDAO   *dao.AuditLogDAO
	mail       mailer.Mailer
}

func NewScheduleController(apptDAO *dao.AppointmentDAO, vehicleDAO *dao.VehicleDAO, auditDAO *dao.AuditLogDAO, mail mailer.Mailer) *ScheduleController {
	return &ScheduleController{
		apptDAO:    apptDAO,
		vehicleDAO: vehicleDAO,
		auditDAO:   auditDAO,
		mail:       mail,
	}
}

func (c *ScheduleController) GetForm(ctx context.Context, vin string) (*types.BookingForm, error) {
	v, err := c.vehicleDAO.GetByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}
	return &types.BookingForm{VIN: vin, CostEstimate: AverageCostEstimate}, nil
}

// Book persists the appointment, writes the SERVICE_BOOKED audit entry and
// sends the confirmation email. The email is fire-and-forget: a failed send
// is logged and the booking still succeeds.
func (c *ScheduleController) Book(ctx context.Context, a middlewares.AuthContext, vin string, req types.BookingRequest) (*models.ServiceAppointment, error) {
	v, err := c.vehicleDAO.GetByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}

	cost := req.Cost
	if cost <= 0 {
		cost = AverageCostEstimate
	}
	appt := models.ServiceAppointment{
		VIN:           vin,
		ServiceCenter: req.ServiceCenter,
		ServiceDate:   req.ServiceDate,
		ServiceTime:   req.ServiceTime,
		Status:        models.AppointmentStatusScheduled,
		Cost:          cost,
	}
	if err := c.apptDAO.Create(ctx, &appt); err != nil {
		return nil, err
	}
	if err := c.auditDAO.Append(ctx, a.Role, models.ActionServiceBooked, vin); err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := c.mail.SendBookingConfirmation(req.Email, appt); err != nil {
			logging.ErrorLogger.Error("booking confirmation email failed",
				zap.String("vin", vin), zap.Error(err))
		}
	}
	return &appt, nil
}

func (c *ScheduleController) ListAppointments(ctx context.Context, a middlewares.AuthContext) ([]models.ServiceAppointment, error) {
	if a.IsAdmin() {
		return c.apptDAO.ListAll(ctx)
	}
	return c.apptDAO.ListByVIN(ctx, a.VIN)
}
