package endpoints

import (
	"github.com/taiyousan15/ocrqc/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health and status endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Quality endpoints
		&AnalyzeEndpoint{},
		&CorrectEndpoint{},
	}
}
