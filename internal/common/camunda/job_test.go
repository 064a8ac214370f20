package camunda

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/errors"
)

type turnInput struct {
	Utterance     string   `json:"utterance"`
	DialogHistory []string `json:"dialogHistory"`
}

var turnSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"utterance"},
	"properties": map[string]interface{}{
		"utterance":     map[string]interface{}{"type": "string"},
		"dialogHistory": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
}

func TestDecodeVariables(t *testing.T) {
	var in turnInput
	err := DecodeVariables(`{"utterance":"بدي بيتزا","dialogHistory":["اسمي سامي"],"extra":1}`, turnSchema, &in)

	require.NoError(t, err)
	assert.Equal(t, "بدي بيتزا", in.Utterance)
	assert.Equal(t, []string{"اسمي سامي"}, in.DialogHistory)
}

func TestDecodeVariables_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		variables string
	}{
		{"not json", `{`},
		{"missing required", `{"dialogHistory":[]}`},
		{"empty", ``},
		{"wrong type", `{"utterance":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in turnInput
			err := DecodeVariables(tt.variables, turnSchema, &in)
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeInvalidJobInput, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestDecodeVariables_NoSchema(t *testing.T) {
	var in turnInput
	require.NoError(t, DecodeVariables(`{"utterance":"مرحبا"}`, nil, &in))
	assert.Equal(t, "مرحبا", in.Utterance)
}
