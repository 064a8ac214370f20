// internal/workers/dialogue/detect-intent/handler.go
package detectintent

import (
	"context"
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
	TaskType = "detect-intent"
)

// Handler asks the upstream classifier for the turn's intent. Classifier
// outages never fail the job; the turn continues as "unknown".
type Handler struct {
	config *Config
	agent  *dialogue.Agent
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, agent *dialogue.Agent, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		agent:  agent,
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
	seed, recovered := h.agent.Seed(ctx, input.Utterance)
	if recovered {
		metrics.UpstreamIntentFailures.Inc()
	}

	return &Output{
		Intent:         seed.Intent,
		IntentLabel:    models.ArabicLabel(seed.Intent),
		Name:           seed.Name,
		ReplyText:      seed.ReplyText,
		UpstreamFailed: recovered,
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
