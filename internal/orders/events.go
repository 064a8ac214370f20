package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

const EventOrderCreated = "order.created"

var ErrMissingTopic = errors.New("sns topic arn is not configured")

// SNSAPI is the subset of the SNS client used to publish order events.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// OrderEvent is the message body sent for every committed order.
type OrderEvent struct {
	EventID    string       `json:"eventId"`
	Type       string       `json:"type"`
	OccurredAt string       `json:"occurredAt"`
	Order      models.Order `json:"order"`
}

// EventPublisher announces committed orders on an SNS topic.
type EventPublisher struct {
	client   SNSAPI
	topicARN string
	now      func() time.Time
	logger   logger.Logger
}

func NewEventPublisher(client SNSAPI, topicARN string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		client:   client,
		topicARN: topicARN,
		now:      time.Now,
		logger:   log.WithFields(map[string]interface{}{"topic": topicARN}),
	}
}

// PublishCreated sends an order.created event and returns it.
func (p *EventPublisher) PublishCreated(ctx context.Context, order models.Order) (OrderEvent, error) {
	if p.topicARN == "" {
		return OrderEvent{}, fmt.Errorf("%w: %w", ErrPublishFailure, ErrMissingTopic)
	}

	event := OrderEvent{
		EventID:    uuid.New().String(),
		Type:       EventOrderCreated,
		OccurredAt: p.now().UTC().Format(time.RFC3339),
		Order:      order,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return OrderEvent{}, fmt.Errorf("%w: %v", ErrPublishFailure, err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventOrderCreated),
			},
		},
	})
	if err != nil {
		return OrderEvent{}, fmt.Errorf("%w: %v", ErrPublishFailure, err)
	}

	fields := map[string]interface{}{
		"eventId": event.EventID,
		"orderId": order.OrderID,
	}
	if out != nil && out.MessageId != nil {
		fields["messageId"] = *out.MessageId
	}
	p.logger.Info("order event published", fields)
	return event, nil
}
