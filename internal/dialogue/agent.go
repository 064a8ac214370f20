// internal/dialogue/agent.go
package dialogue

import (
	"context"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

// Classifier detects the coarse intent of an utterance.
type Classifier interface {
	Detect(ctx context.Context, utterance string) (models.ClassifierResult, error)
}

// Agent runs a full turn: classify, then resolve through the dispatcher.
type Agent struct {
	classifier Classifier
	dispatcher *Dispatcher
	logger     logger.Logger
}

func NewAgent(classifier Classifier, dispatcher *Dispatcher, log logger.Logger) *Agent {
	return &Agent{
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     log.WithFields(map[string]interface{}{"component": "dialogue-agent"}),
	}
}

// UnknownRecord is the safe record substituted when classification fails.
func UnknownRecord() models.IntentRecord {
	return models.IntentRecord{
		Intent:    models.IntentUnknown,
		Items:     []string{},
		ReplyText: UnknownReply,
	}
}

// Seed classifies utterance. When the classifier fails it returns
// UnknownRecord and recovered=true; the failure is logged, not returned.
func (a *Agent) Seed(ctx context.Context, utterance string) (rec models.IntentRecord, recovered bool) {
	result, err := a.classifier.Detect(ctx, utterance)
	if err != nil {
		a.logger.Warn("intent classification failed, using unknown intent", map[string]interface{}{
			"error": err.Error(),
		})
		return UnknownRecord(), true
	}
	return result.Seed(), false
}

// Respond classifies and resolves one turn.
func (a *Agent) Respond(ctx context.Context, utterance string) models.IntentRecord {
	seed, recovered := a.Seed(ctx, utterance)
	if recovered {
		return seed
	}

	rec := a.dispatcher.Resolve(utterance, seed)
	a.logger.Debug("turn resolved", map[string]interface{}{
		"intent":       rec.Intent,
		"itemCount":    len(rec.Items),
		"orderIsValid": rec.OrderIsValid,
	})
	return rec
}

// Resolve applies the dispatcher to an already classified turn.
func (a *Agent) Resolve(utterance string, seed models.IntentRecord) models.IntentRecord {
	return a.dispatcher.Resolve(utterance, seed)
}
