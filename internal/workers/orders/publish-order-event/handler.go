// internal/workers/orders/publish-order-event/handler.go
package publishorderevent

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"voice-order-workers/internal/common/camunda"
	"voice-order-workers/internal/common/errors"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/common/metrics"
	"voice-order-workers/internal/models"
	"voice-order-workers/internal/orders"
	"voice-order-workers/pkg/registry"
)

const (
	TaskType = "publish-order-event"

	StatusPublished = "published"
)

// Publisher announces a committed order.
type Publisher interface {
	PublishCreated(ctx context.Context, order models.Order) (orders.OrderEvent, error)
}

type Handler struct {
	config    *Config
	publisher Publisher
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, publisher Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		publisher: publisher,
		errors:    errors.NewErrorHandler(log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.DecodeVariables(job.Variables, registry.InputSchema(TaskType), &input); err != nil {
		h.fail(client, job, err, start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(client, job, err, start)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey":  job.Key,
			"eventId": output.EventID,
			"error":   err.Error(),
		})
		return
	}
	metrics.ObserveJob(TaskType, "", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	status := models.OrderStatus(input.Status)
	if status == "" {
		status = models.OrderStatusPending
	}
	items := input.Items
	if items == nil {
		items = []string{}
	}

	event, err := h.publisher.PublishCreated(ctx, models.Order{
		OrderID:   input.OrderID,
		Name:      input.Name,
		Items:     items,
		ETA:       input.ETA,
		Timestamp: input.Timestamp,
		Status:    status,
	})
	if err != nil {
		if stderrors.Is(err, orders.ErrMissingTopic) {
			return nil, errors.NewBusinessRuleError("Order events are not configured", err.Error())
		}
		return nil, errors.NewOrderEventPublishFailedError(input.OrderID, err)
	}

	return &Output{
		EventID:     event.EventID,
		EventType:   event.Type,
		Status:      StatusPublished,
		PublishedAt: event.OccurredAt,
	}, nil
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	h.errors.HandleJobError(context.Background(), client, job, stdErr)
	metrics.ObserveJob(TaskType, string(stdErr.Code), time.Since(start).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
