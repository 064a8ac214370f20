package publishorderevent

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/errors"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/orders"
)

const testTopic = "arn:aws:sns:eu-central-1:123456789012:order-events"

// MockSNSClient records published messages.
type MockSNSClient struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *MockSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, params)
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func newTestHandler(t *testing.T, client *MockSNSClient, topic string) *Handler {
	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(), orders.NewEventPublisher(client, topic, log), log)
}

func TestHandler_Execute(t *testing.T) {
	client := &MockSNSClient{}
	h := newTestHandler(t, client, testTopic)

	out, err := h.Execute(context.Background(), &Input{
		OrderID:   "١٢٣٤٥",
		Name:      "سامي",
		Items:     []string{"بيتزا"},
		ETA:       "15 دقيقة",
		Timestamp: "2024-05-01T12:30:00Z",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(out.EventID)
	assert.NoError(t, err)
	assert.Equal(t, StatusPublished, out.Status)
	assert.Equal(t, orders.EventOrderCreated, out.EventType)
	assert.NotEmpty(t, out.PublishedAt)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, testTopic, aws.ToString(client.inputs[0].TopicArn))

	var event orders.OrderEvent
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.inputs[0].Message)), &event))
	assert.Equal(t, out.EventID, event.EventID)
	assert.Equal(t, "١٢٣٤٥", event.Order.OrderID)
	assert.Equal(t, "pending", string(event.Order.Status))
}

func TestHandler_Execute_PublishFailure(t *testing.T) {
	h := newTestHandler(t, &MockSNSClient{err: fmt.Errorf("throttled")}, testTopic)

	_, err := h.Execute(context.Background(), &Input{OrderID: "١٢٣٤٥"})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeOrderEventPublishFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_MissingTopic(t *testing.T) {
	client := &MockSNSClient{}
	h := newTestHandler(t, client, "")

	_, err := h.Execute(context.Background(), &Input{OrderID: "١٢٣٤٥"})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.False(t, stdErr.Retryable)
	assert.Empty(t, client.inputs)
}
