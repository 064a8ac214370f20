// internal/workers/orders/submit-order/handler.go
package submitorder

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
	TaskType = "submit-order"
)

// Committer stores an order for a named customer.
type Committer interface {
	Commit(ctx context.Context, name string, items []string, history []string) (models.Order, error)
}

// Indexer makes a committed order searchable. Optional.
type Indexer interface {
	Index(ctx context.Context, order models.Order) error
}

type Handler struct {
	config   *Config
	resolver Committer
	index    Indexer
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, resolver Committer, index Indexer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		resolver: resolver,
		index:    index,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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
			"orderId": output.OrderID,
			"error":   err.Error(),
		})
		return
	}
	metrics.ObserveJob(TaskType, "", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	order, err := h.resolver.Commit(ctx, input.Name, input.Items, input.DialogHistory)
	if err != nil {
		if stderrors.Is(err, orders.ErrMissingName) {
			return nil, errors.NewMissingNameError(orders.MissingNameReply)
		}
		return nil, errors.NewOrderStoreFailedError("create", err)
	}
	metrics.OrdersCommitted.WithLabelValues(h.config.StoreName).Inc()

	// Indexing is non-critical: the order is already stored.
	indexed := false
	if h.index != nil {
		if err := h.index.Index(ctx, order); err != nil {
			h.logger.Warn("failed to index order", map[string]interface{}{
				"orderId": order.OrderID,
				"error":   err.Error(),
			})
		} else {
			indexed = true
		}
	}

	return &Output{
		OrderID:   order.OrderID,
		Name:      order.Name,
		Items:     order.Items,
		ETA:       order.ETA,
		Status:    string(order.Status),
		Timestamp: order.Timestamp,
		ReplyText: orders.ConfirmationReply(order),
		Indexed:   indexed,
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
