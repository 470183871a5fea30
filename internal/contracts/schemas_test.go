package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRefreshTaskEvent(t *testing.T) {
	body := []byte(`{
		"task_id": "b7a9c430-3cd7-4f10-8a3a-27b1f62ad1a0",
		"requested_at": "2026-02-10T09:30:00Z",
		"criteria": {
			"location": "Paris",
			"min_price": 1000,
			"max_price": 1500,
			"rooms": 2,
			"furnished": true
		}
	}`)

	assert.NoError(t, ValidateEvent("refresh-task", "v1", body))
}

func TestValidateRejectsMalformedEvents(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing task_id", `{"criteria": {}}`},
		{"task_id is not a uuid", `{"task_id": "not-a-uuid", "criteria": {}}`},
		{"unknown criteria field", `{"task_id": "b7a9c430-3cd7-4f10-8a3a-27b1f62ad1a0", "criteria": {"city": "Paris"}}`},
		{"wrong type", `{"task_id": "b7a9c430-3cd7-4f10-8a3a-27b1f62ad1a0", "criteria": {"rooms": "two"}}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateEvent("refresh-task", "v1", []byte(tt.body)))
		})
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	err := ValidateEvent("refresh-task", "v99", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
