package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed activities.json
var embeddedActivities []byte

var (
	defaultOnce sync.Once
	defaultReg  *ActivityRegistry
	defaultErr  error
)

// LoadRegistry reads a registry file from disk.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Default returns the registry compiled into the binary.
func Default() *ActivityRegistry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Parse(embeddedActivities)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// InputSchema returns the input schema of taskType in the default
// registry, or nil if the task type is unknown.
func InputSchema(taskType string) map[string]interface{} {
	a, ok := Default().Find(taskType)
	if !ok {
		return nil
	}
	return a.InputSchema
}
