package types

import "fleetwatch/fleetwatch/sources/psql/models"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatHistoryResponse struct {
	Vehicle  ScoredVehicle        `json:"vehicle"`
	Messages []models.ChatMessage `json:"messages"`
}

type ChatReplyResponse struct {
	Reply    models.ChatMessage   `json:"reply"`
	Messages []models.ChatMessage `json:"messages"`
}
