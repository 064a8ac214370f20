package detectintent

type Input struct {
	Utterance string `json:"utterance"`
}

type Output struct {
	Intent         string `json:"intent"`
	IntentLabel    string `json:"intentLabel"`
	Name           string `json:"name"`
	ReplyText      string `json:"replyText"`
	UpstreamFailed bool   `json:"upstreamFailed"`
}
