package controllers

import (
	"context"

	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/services/risk"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"
	"fleetwatch/fleetwatch/utils/types"
)

type VehicleController struct {
	vehicleDAO *dao.VehicleDAO
	model      *risk.Model
}

func NewVehicleController(vehicleDAO *dao.VehicleDAO, model *risk.Model) *VehicleController {
	return &VehicleController{vehicleDAO: vehicleDAO, model: model}
}

func (c *VehicleController) scoreVehicle(v models.Vehicle) types.ScoredVehicle {
	res := c.model.Score(risk.Input{
		Age:        v.Age,
		Mileage:    v.Mileage,
		EngineTemp: v.EngineTemp,
		ErrorCount: v.ErrorCount,
	})
	return types.ScoredVehicle{
		Vehicle:   v,
		Risk:      res.Risk,
		RiskScore: res.RiskScore,
		Alert:     res.Alert,
	}
}

// ListScored returns the caller's visible fleet, each row annotated with
// freshly computed risk fields.
func (c *VehicleController) ListScored(ctx context.Context, a middlewares.AuthContext) ([]types.ScoredVehicle, error) {
	var vehicles []models.Vehicle
	if a.IsAdmin() {
		all, err := c.vehicleDAO.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		vehicles = all
	} else {
		v, err := c.vehicleDAO.GetByVIN(ctx, a.VIN)
		if err != nil {
			return nil, err
		}
		if v != nil {
			vehicles = []models.Vehicle{*v}
		}
	}

	scored := make([]types.ScoredVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		scored = append(scored, c.scoreVehicle(v))
	}
	return scored, nil
}

func (c *VehicleController) GetScored(ctx context.Context, vin string) (*types.ScoredVehicle, error) {
	v, err := c.vehicleDAO.GetByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}
	sv := c.scoreVehicle(*v)
	return &sv, nil
}

// Report aggregates the scored listing for the reports page.
func (c *VehicleController) Report(ctx context.Context, a middlewares.AuthContext) (types.ReportSummary, []types.ScoredVehicle, error) {
	scored, err := c.ListScored(ctx, a)
	if err != nil {
		return types.ReportSummary{}, nil, err
	}
	summary := types.ReportSummary{TotalVehicles: len(scored)}
	for _, sv := range scored {
		if sv.Risk == risk.RiskHigh {
			summary.HighRisk++
		} else {
			summary.LowRisk++
		}
		if sv.Notified {
			summary.Notified++
		}
	}
	return summary, scored, nil
}
