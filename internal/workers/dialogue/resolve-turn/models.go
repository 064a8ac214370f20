package resolveturn

type Input struct {
	Utterance     string   `json:"utterance"`
	Intent        string   `json:"intent"`
	Name          string   `json:"name"`
	ReplyText     string   `json:"replyText"`
	DialogHistory []string `json:"dialogHistory"`
}

type Output struct {
	Intent       string   `json:"intent"`
	IntentLabel  string   `json:"intentLabel"`
	Name         string   `json:"name"`
	Items        []string `json:"items"`
	ReplyText    string   `json:"replyText"`
	OrderIsValid bool     `json:"orderIsValid"`
}
