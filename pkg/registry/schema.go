// pkg/registry/schema.go
package registry

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one job type the worker manager can serve.
type Activity struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Version         string   `json:"version"`
	TaskType        string   `json:"taskType"`
	InputVariables  []string `json:"inputVariables"`
	OutputVariables []string `json:"outputVariables"`
	ErrorCodes      []string `json:"errorCodes"`
	Timeout         string   `json:"timeout"`
	Retries         int      `json:"retries"`
}
