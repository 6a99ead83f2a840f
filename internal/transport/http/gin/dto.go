package httpgin

import (
	"github.com/kirinyoku/loket-go/internal/domain"
)

type NewQueueRequest struct {
	ServiceType string `json:"service_type" binding:"required"`
}

type FinishQueueRequest struct {
	QueueNumber string `json:"queue_number" binding:"required"`
}

type ServicesResponse struct {
	Success  bool     `json:"success"`
	Services []string `json:"services"`
}

type QueueNumberResponse struct {
	Success     bool   `json:"success"`
	QueueNumber string `json:"queue_number"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type QueuesResponse struct {
	Success bool            `json:"success"`
	Queues  []domain.Ticket `json:"queues"`
}

type DisplayResponse struct {
	Success      bool            `json:"success"`
	CalledQueues []domain.Ticket `json:"called_queues"`
}

type StatsResponse struct {
	Success bool              `json:"success"`
	Stats   domain.QueueStats `json:"stats"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
