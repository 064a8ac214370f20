// internal/workers/orders/query-orders/handler.go
package queryorders

import (
	"context"
	stderrors "errors"
	"strings"
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
	TaskType = "query-orders"
)

// Handler reads orders back by id, by customer name, or all of them.
// Name lookups merge the store with the search index when one is configured.
type Handler struct {
	config   *Config
	store    orders.Store
	searcher orders.NameSearcher
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, store orders.Store, searcher orders.NameSearcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		store:    store,
		searcher: searcher,
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
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	metrics.ObserveJob(TaskType, "", time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	orderID := strings.TrimSpace(input.OrderID)
	name := strings.TrimSpace(input.CustomerName)

	switch {
	case orderID != "":
		return h.byID(ctx, orderID)
	case name != "":
		return h.byName(ctx, name)
	default:
		all, err := h.store.List(ctx)
		if err != nil {
			return nil, errors.NewOrderStoreFailedError("list", err)
		}
		return listOutput(all), nil
	}
}

func (h *Handler) byID(ctx context.Context, orderID string) (*Output, error) {
	order, err := h.store.Get(ctx, orderID)
	if err != nil {
		if stderrors.Is(err, orders.ErrOrderNotFound) {
			return nil, errors.NewOrderNotFoundError(orderID)
		}
		return nil, errors.NewOrderStoreFailedError("get", err)
	}
	return &Output{
		Order:      &order,
		Orders:     []models.Order{order},
		TotalCount: 1,
	}, nil
}

func (h *Handler) byName(ctx context.Context, name string) (*Output, error) {
	all, listErr := h.store.List(ctx)
	found := orders.FilterByName(all, name)

	if h.searcher == nil {
		if listErr != nil {
			return nil, errors.NewOrderStoreFailedError("list", listErr)
		}
		return listOutput(found), nil
	}

	// store matches first, then index hits the store did not return
	hits, searchErr := h.searcher.SearchByName(ctx, name)
	switch {
	case listErr != nil && searchErr != nil:
		return nil, errors.NewSearchQueryFailedError("name="+name, stderrors.Join(listErr, searchErr))
	case searchErr != nil:
		h.logger.Warn("order search failed, answering from the store", map[string]interface{}{
			"error": searchErr.Error(),
		})
	case listErr != nil:
		h.logger.Warn("order store list failed, answering from the search index", map[string]interface{}{
			"error": listErr.Error(),
		})
	}
	return listOutput(mergeOrders(found, hits)), nil
}

// mergeOrders appends the hits that are not already in base.
func mergeOrders(base, hits []models.Order) []models.Order {
	seen := make(map[string]bool, len(base))
	key := func(o models.Order) string {
		return o.OrderID + "|" + o.Timestamp + "|" + o.Name
	}
	for _, o := range base {
		seen[key(o)] = true
	}
	for _, o := range hits {
		if !seen[key(o)] {
			seen[key(o)] = true
			base = append(base, o)
		}
	}
	return base
}

func listOutput(list []models.Order) *Output {
	if list == nil {
		list = []models.Order{}
	}
	return &Output{Orders: list, TotalCount: len(list)}
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	h.errors.HandleJobError(context.Background(), client, job, stdErr)
	metrics.ObserveJob(TaskType, string(stdErr.Code), time.Since(start).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
