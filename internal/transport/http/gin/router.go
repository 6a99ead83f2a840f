package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/loket-go/internal/domain"
	redisrepo "github.com/kirinyoku/loket-go/internal/repository/redis"
	"github.com/kirinyoku/loket-go/internal/service/queue"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// QueueService mutates tickets.
type QueueService interface {
	IssueTicket(ctx context.Context, serviceType string) (*domain.Ticket, error)
	CallNext(ctx context.Context, serviceType string) (*domain.Ticket, error)
	Complete(ctx context.Context, queueNumber string) error
	Skip(ctx context.Context, queueNumber string) error
}

// QueryService answers the read endpoints.
type QueryService interface {
	Services(ctx context.Context) []string
	ListQueues(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error)
	CalledQueues(ctx context.Context) ([]domain.Ticket, error)
	Stats(ctx context.Context) (*domain.QueueStats, error)
}

func NewRouter(
	queueSvc QueueService,
	querySvc QueryService,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/services", handleServices(querySvc))
		api.GET("/queues", handleListQueues(querySvc))
		api.GET("/display/current", handleDisplayCurrent(querySvc))
		api.GET("/stats", handleStats(querySvc))

		api.POST("/queue/new", handleNewQueue(queueSvc, idem, limiter))
		api.POST("/queue/call", handleCallQueue(queueSvc))
		api.POST("/queue/complete", handleCompleteQueue(queueSvc))
		api.POST("/queue/skip", handleSkipQueue(queueSvc))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List available services
// @Success  200  {object}  ServicesResponse
// @Router   /api/services [get]
func handleServices(querySvc QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := ServicesResponse{
			Success:  true,
			Services: querySvc.Services(c.Request.Context()),
		}
		writeJSONWithCache(c, http.StatusOK, resp, "public, max-age=60")
	}
}

// @Summary  Issue a new queue ticket
// @Param    req body  NewQueueRequest true "payload"
// @Header   200 {string} Idempotency-Key "echo"
// @Success  200 {object} QueueNumberResponse
// @Failure  400 {object} ErrorResponse "invalid service"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/queue/new [post]
func handleNewQueue(
	queueSvc QueueService,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewQueueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "service_type is required")
			return
		}

		if limiter != nil {
			ok, _, retry, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
			if err != nil {
				respondErr(c, err)
				return
			}
			if !ok {
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Message: "too many tickets requested, slow down",
				})
				return
			}
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemNewTicket(idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 30*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{
					Message: "request with this idempotency key is in progress",
				})
				return
			}
		}

		t, err := queueSvc.IssueTicket(c.Request.Context(), req.ServiceType)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := QueueNumberResponse{Success: true, QueueNumber: t.QueueNumber}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Call the next waiting ticket
// @Param    service  query  string  true  "Service name"
// @Success  200 {object} QueueNumberResponse
// @Failure  400 {object} ErrorResponse "invalid service"
// @Failure  404 {object} ErrorResponse "no waiting ticket"
// @Router   /api/queue/call [post]
func handleCallQueue(queueSvc QueueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceType := c.Query("service")
		if serviceType == "" {
			badRequest(c, "service query parameter is required")
			return
		}

		t, err := queueSvc.CallNext(c.Request.Context(), serviceType)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, QueueNumberResponse{Success: true, QueueNumber: t.QueueNumber})
	}
}

// @Summary  Complete a called ticket
// @Param    req body  FinishQueueRequest true "payload"
// @Success  200 {object} MessageResponse
// @Failure  400 {object} ErrorResponse "missing field / illegal transition"
// @Failure  404 {object} ErrorResponse "unknown queue number"
// @Router   /api/queue/complete [post]
func handleCompleteQueue(queueSvc QueueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FinishQueueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "queue_number is required")
			return
		}

		if err := queueSvc.Complete(c.Request.Context(), req.QueueNumber); err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{
			Success: true,
			Message: "queue " + req.QueueNumber + " completed",
		})
	}
}

// @Summary  Skip a called ticket
// @Param    req body  FinishQueueRequest true "payload"
// @Success  200 {object} MessageResponse
// @Failure  400 {object} ErrorResponse "missing field / illegal transition"
// @Failure  404 {object} ErrorResponse "unknown queue number"
// @Router   /api/queue/skip [post]
func handleSkipQueue(queueSvc QueueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FinishQueueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "queue_number is required")
			return
		}

		if err := queueSvc.Skip(c.Request.Context(), req.QueueNumber); err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{
			Success: true,
			Message: "queue " + req.QueueNumber + " skipped",
		})
	}
}

// @Summary  List all tickets
// @Param    status   query  string  false "waiting|called|completed|skipped"
// @Param    service  query  string  false "Service name"
// @Success  200 {object} QueuesResponse
// @Router   /api/queues [get]
func handleListQueues(querySvc QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := domain.TicketStatus(c.Query("status"))
		serviceType := c.Query("service")

		queues, err := querySvc.ListQueues(c.Request.Context(), status, serviceType)
		if err != nil {
			respondErr(c, err)
			return
		}
		if queues == nil {
			queues = []domain.Ticket{}
		}

		writeJSONWithCache(c, http.StatusOK, QueuesResponse{
			Success: true,
			Queues:  queues,
		}, "public, max-age=2")
	}
}

// @Summary  Currently called tickets for the public display
// @Success  200 {object} DisplayResponse
// @Router   /api/display/current [get]
func handleDisplayCurrent(querySvc QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		called, err := querySvc.CalledQueues(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if called == nil {
			called = []domain.Ticket{}
		}

		writeJSONWithCache(c, http.StatusOK, DisplayResponse{
			Success:      true,
			CalledQueues: called,
		}, "public, max-age=2")
	}
}

// @Summary  Queue statistics
// @Success  200 {object} StatsResponse
// @Router   /api/stats [get]
func handleStats(querySvc QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := querySvc.Stats(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, StatsResponse{
			Success: true,
			Stats:   *stats,
		}, "public, max-age=2")
	}
}

// --- Helpers ---

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: msg})
}

// respondErr maps service errors to the {success:false, message}
// envelope. Anything unrecognized is a generic 500; details stay in
// the server log.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queue.ErrInvalidService):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid service type"})
	case errors.Is(err, queue.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "ticket is not in a callable state for this action"})
	case errors.Is(err, queue.ErrNoWaiting):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "no waiting tickets for this service"})
	case errors.Is(err, queue.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "queue number not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
