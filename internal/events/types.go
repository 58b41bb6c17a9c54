package events

// PageRequested is published for every page request attempt, retries included
type PageRequested struct {
	QueryID string `json:"query_id"`
	Page    int    `json:"page"`
	Filter  string `json:"filter,omitempty"`
	Attempt int    `json:"attempt"`
}

// PageFailed is published when a page attempt fails
type PageFailed struct {
	QueryID string `json:"query_id"`
	Page    int    `json:"page"`
	Attempt int    `json:"attempt"`
	Error   string `json:"error"`
}

// FilterIgnored is published when a non-empty filter normalized to nothing
type FilterIgnored struct {
	QueryID string   `json:"query_id"`
	Raw     string   `json:"raw"`
	Dropped []string `json:"dropped,omitempty"`
}

type QueryCompleted struct {
	QueryID string `json:"query_id"`
	Page    int    `json:"page"`
	Filter  string `json:"filter,omitempty"`
	Sort    string `json:"sort"`
	Count   int    `json:"count"`
}

type QueryFailed struct {
	QueryID string `json:"query_id"`
	Page    int    `json:"page"`
	Error   string `json:"error"`
}
