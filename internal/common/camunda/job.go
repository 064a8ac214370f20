// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"voice-order-workers/internal/common/errors"
	"voice-order-workers/internal/common/validation"
)

// DecodeVariables checks job variables against schema and decodes them
// into dst. Every failure is an INVALID_JOB_INPUT StandardError.
func DecodeVariables(variables string, schema map[string]interface{}, dst interface{}) error {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	var vars map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &vars); err != nil {
		return errors.NewInvalidJobInputError(fmt.Sprintf("parse variables: %v", err))
	}

	result, err := validation.ValidateVariables(schema, vars)
	if err != nil {
		return errors.NewInvalidJobInputError(err.Error())
	}
	if !result.Valid {
		return errors.NewInvalidJobInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(variables), dst); err != nil {
		return errors.NewInvalidJobInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
