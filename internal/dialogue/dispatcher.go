// internal/dialogue/dispatcher.go
package dialogue

import (
	"strings"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/models"
)

// fallbackHandler passes the classifier's record through. It still looks
// for items when the label is an ordering label in a non-canonical form.
type fallbackHandler struct {
	items ItemFinder
}

func (h *fallbackHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	items := []string{}
	switch strings.ToLower(strings.TrimSpace(prior.Intent)) {
	case models.IntentPlaceOrder, models.IntentGreetingAndMenu:
		items = h.items.Extract(utterance)
	}

	reply := prior.ReplyText
	if reply == "" {
		reply = DefaultReply
	}

	return models.IntentRecord{
		Intent:    prior.Intent,
		Name:      prior.Name,
		Items:     items,
		ReplyText: reply,
	}
}

// Dispatcher binds every Kind to its Handler. It is immutable after
// construction and safe for concurrent use.
type Dispatcher struct {
	handlers map[Kind]Handler
	fallback Handler
}

func NewDispatcher(settings *menu.Settings, items ItemFinder, names NameFinder) *Dispatcher {
	catalog := settings.Catalog()

	return &Dispatcher{
		handlers: map[Kind]Handler{
			KindGreetingAndMenu: &greetingHandler{
				catalog:  catalog.Items(),
				greeting: settings.GreetingKeywords(),
				menu:     settings.MenuKeywords(),
				items:    items,
			},
			KindPlaceOrder: &placeOrderHandler{
				catalog: catalog,
				eta:     settings.ETA(),
				items:   items,
			},
			KindProvideName: &provideNameHandler{
				catalog: catalog,
				eta:     settings.ETA(),
				items:   items,
				names:   names,
			},
			KindCancelOrder: cancelHandler{},
			KindGratitude:   gratitudeHandler{},
			KindComplaint:   &complaintHandler{hotline: settings.Contact().ComplaintPhone},
			KindQuestion:    &questionHandler{settings: settings},
		},
		fallback: &fallbackHandler{items: items},
	}
}

// Dispatch returns the handler for label. Unknown labels get the
// pass-through handler.
func (d *Dispatcher) Dispatch(label string) Handler {
	if h, ok := d.handlers[ParseKind(label)]; ok {
		return h
	}
	return d.fallback
}

// Resolve runs the handler selected by prior.Intent.
func (d *Dispatcher) Resolve(utterance string, prior models.IntentRecord) models.IntentRecord {
	rec := d.Dispatch(prior.Intent).Handle(utterance, prior)
	if rec.Items == nil {
		rec.Items = []string{}
	}
	return rec
}
