// internal/models/intent.go
package models

// Intent labels emitted by the upstream classifier.
const (
	IntentGreetingAndMenu = "greeting_and_menu_request"
	IntentProvideName     = "provide_name"
	IntentPlaceOrder      = "place_order"
	IntentGratitude       = "gratitude"
	IntentGoodbye         = "goodbye"
	IntentAskETA          = "ask_eta"
	IntentCancelOrder     = "cancel_order"
	IntentQuestion        = "question"
	IntentComplaint       = "complaint"

	// IntentUnknown marks a turn the classifier could not serve.
	IntentUnknown = "unknown"
	// IntentGreeting is the label the gratitude handler switches to when
	// a thank-you turn is really a greeting.
	IntentGreeting = "ترحيب"
)

var arabicLabels = map[string]string{
	IntentGreetingAndMenu: "طلب قائمة الطعام / الترحيب",
	IntentProvideName:     "تقديم الاسم",
	IntentPlaceOrder:      "تقديم طلب",
	IntentGratitude:       "شكر",
	IntentGoodbye:         "وداع",
	IntentAskETA:          "سؤال عن الوقت المتوقع",
	IntentCancelOrder:     "إلغاء الطلب",
	IntentQuestion:        "سؤال",
	IntentComplaint:       "شكوى",
}

// ArabicLabel returns the display name of an intent label, or the label
// itself when it has none.
func ArabicLabel(intent string) string {
	if l, ok := arabicLabels[intent]; ok {
		return l
	}
	return intent
}

// IntentRecord is the per-turn resolver output. Handlers derive a fresh
// record from the prior one instead of mutating it.
type IntentRecord struct {
	Intent       string   `json:"intent"`
	Name         string   `json:"name,omitempty"`
	Items        []string `json:"items"`
	ReplyText    string   `json:"reply_text"`
	OrderIsValid bool     `json:"order_is_valid"`
}

// ClassifierResult is the advisory payload returned by the intent
// classifier. Only Intent is authoritative.
type ClassifierResult struct {
	Intent    string `json:"intent"`
	Name      string `json:"name,omitempty"`
	ReplyText string `json:"reply_text,omitempty"`
}

// Seed turns a classifier result into the prior record for a handler.
func (c ClassifierResult) Seed() IntentRecord {
	return IntentRecord{
		Intent:    c.Intent,
		Name:      c.Name,
		Items:     []string{},
		ReplyText: c.ReplyText,
	}
}
