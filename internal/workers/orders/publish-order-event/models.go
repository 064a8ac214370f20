package publishorderevent

type Input struct {
	OrderID   string   `json:"orderId"`
	Name      string   `json:"name"`
	Items     []string `json:"items"`
	ETA       string   `json:"eta"`
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
}

type Output struct {
	EventID     string `json:"eventId"`
	EventType   string `json:"eventType"`
	Status      string `json:"status"`
	PublishedAt string `json:"publishedAt"`
}
