// internal/workers/dialogue/resolve-turn/handler.go
package resolveturn

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"voice-order-workers/internal/common/camunda"
	"voice-order-workers/internal/common/errors"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/common/metrics"
	"voice-order-workers/internal/dialogue"
	"voice-order-workers/internal/models"
	"voice-order-workers/pkg/registry"
)

const (
	TaskType = "resolve-turn"
)

// HistoryNameFinder recovers a name from earlier turns.
type HistoryNameFinder interface {
	FromHistory(history []string) (string, bool)
}

// Handler applies the intent's dialogue policy to a classified turn.
type Handler struct {
	config *Config
	agent  *dialogue.Agent
	names  HistoryNameFinder
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, agent *dialogue.Agent, names HistoryNameFinder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		agent:  agent,
		names:  names,
		errors: errors.NewErrorHandler(log),
		logger: log,
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := h.seed(input)
	rec := h.agent.Resolve(input.Utterance, seed)

	metrics.IntentResolutions.WithLabelValues(rec.Intent, strconv.FormatBool(rec.OrderIsValid)).Inc()
	h.logger.Debug("turn resolved", map[string]interface{}{
		"intent":       rec.Intent,
		"itemCount":    len(rec.Items),
		"orderIsValid": rec.OrderIsValid,
	})

	return &Output{
		Intent:       rec.Intent,
		IntentLabel:  models.ArabicLabel(rec.Intent),
		Name:         rec.Name,
		Items:        rec.Items,
		ReplyText:    rec.ReplyText,
		OrderIsValid: rec.OrderIsValid,
	}, nil
}

// seed rebuilds the prior record from job variables. A turn without an
// intent is treated as an unclassified one.
func (h *Handler) seed(input *Input) models.IntentRecord {
	intent := strings.TrimSpace(input.Intent)
	if intent == "" {
		return dialogue.UnknownRecord()
	}

	name := strings.TrimSpace(input.Name)
	if name == "" && h.config.SeedNameFromHistory && h.names != nil {
		name, _ = h.names.FromHistory(input.DialogHistory)
	}

	return models.IntentRecord{
		Intent:    intent,
		Name:      name,
		Items:     []string{},
		ReplyText: input.ReplyText,
	}
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	h.errors.HandleJobError(context.Background(), client, job, stdErr)
	metrics.ObserveJob(TaskType, string(stdErr.Code), time.Since(start).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
