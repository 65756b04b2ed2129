package models

// Response is the JSON envelope written by every HTTP endpoint.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// AppInfo describes the running server instance.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	BuildDate   string `json:"buildDate,omitempty"`
	BuildCommit string `json:"buildCommit,omitempty"`
}
