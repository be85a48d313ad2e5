package controllers

import (
	"context"

	"fleetwatch/fleetwatch/middlewares"
	"fleetwatch/fleetwatch/services/responder"
	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"
	"fleetwatch/fleetwatch/utils/types"
)

type ChatController struct {
	chatDAO   *dao.ChatMessageDAO
	auditDAO  *dao.AuditLogDAO
	vehicles  *VehicleController
	responder *responder.Responder
}

func NewChatController(chatDAO *dao.ChatMessageDAO, auditDAO *dao.AuditLogDAO, vehicles *VehicleController, resp *responder.Responder) *ChatController {
	return &ChatController{
		chatDAO:   chatDAO,
		auditDAO:  auditDAO,
		vehicles:  vehicles,
		responder: resp,
	}
}

func (c *ChatController) History(ctx context.Context, vin string) (*types.ChatHistoryResponse, error) {
	sv, err := c.vehicles.GetScored(ctx, vin)
	if err != nil {
		return nil, err
	}
	history, err := c.chatDAO.GetHistoryByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	return &types.ChatHistoryResponse{Vehicle: *sv, Messages: history}, nil
}

// Send appends the customer message, generates the canned reply from the
// vehicle's current risk and appends it as an AI message.
func (c *ChatController) Send(ctx context.Context, a middlewares.AuthContext, vin, message string) (*types.ChatReplyResponse, error) {
	sv, err := c.vehicles.GetScored(ctx, vin)
	if err != nil {
		return nil, err
	}

	if _, err := c.chatDAO.SaveMessage(ctx, vin, models.SenderCustomer, message); err != nil {
		return nil, err
	}

	replyText := c.responder.Respond(message, sv.Risk, sv.RiskScore)
	reply, err := c.chatDAO.SaveMessage(ctx, vin, models.SenderAI, replyText)
	if err != nil {
		return nil, err
	}

	if err := c.auditDAO.Append(ctx, a.Role, models.ActionAIChatResponse, vin); err != nil {
		return nil, err
	}

	history, err := c.chatDAO.GetHistoryByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	return &types.ChatReplyResponse{Reply: *reply, Messages: history}, nil
}
