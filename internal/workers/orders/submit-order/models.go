package submitorder

type Input struct {
	Name          string   `json:"name"`
	Items         []string `json:"items"`
	DialogHistory []string `json:"dialogHistory"`
}

type Output struct {
	OrderID   string   `json:"orderId"`
	Name      string   `json:"name"`
	Items     []string `json:"items"`
	ETA       string   `json:"eta"`
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	ReplyText string   `json:"replyText"`
	Indexed   bool     `json:"indexed"`
}
