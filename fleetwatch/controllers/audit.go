package controllers

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/dao"
	"fleetwatch/fleetwatch/sources/psql/models"
)

type AuditController struct {
	auditDAO *dao.AuditLogDAO
}

func NewAuditController(auditDAO *dao.AuditLogDAO) *AuditController {
	return &AuditController{auditDAO: auditDAO}
}

func (c *AuditController) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return c.auditDAO.ListNewestFirst(ctx, limit)
}
