// internal/dialogue/handler.go
package dialogue

import (
	"fmt"
	"strings"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/models"
	"voice-order-workers/internal/nlu/textnorm"
)

// Handler applies one intent's conversational policy.
type Handler interface {
	Handle(utterance string, prior models.IntentRecord) models.IntentRecord
}

// ItemFinder extracts canonical menu items from an utterance.
type ItemFinder interface {
	Extract(utterance string) []string
}

// NameFinder extracts a self-introduced name from an utterance.
type NameFinder interface {
	Extract(utterance string) (string, bool)
}

// greetingHandler welcomes the caller and lists the menu on request.
type greetingHandler struct {
	catalog  []string
	greeting []string
	menu     []string
	items    ItemFinder
}

func (h *greetingHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	folded := textnorm.Fold(utterance)
	hasMenu := textnorm.ContainsAny(folded, h.menu)
	hasGreeting := textnorm.ContainsAny(folded, h.greeting)

	var reply string
	switch {
	case hasMenu && hasGreeting:
		reply = fmt.Sprintf(replyWelcomeMenu, bulletedMenu(h.catalog))
	case hasMenu:
		reply = fmt.Sprintf(replyMenuOnly, bulletedMenu(h.catalog))
	default:
		reply = replyWelcome
	}

	return models.IntentRecord{
		Intent:    models.IntentGreetingAndMenu,
		Name:      prior.Name,
		Items:     h.items.Extract(utterance),
		ReplyText: reply,
	}
}

// placeOrderHandler validates items and asks for whatever is missing.
type placeOrderHandler struct {
	catalog menu.Catalog
	eta     string
	items   ItemFinder
}

func (h *placeOrderHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	items := h.items.Extract(utterance)
	valid, missing := partition(h.catalog, items)
	catalog := h.catalog.Items()

	rec := models.IntentRecord{
		Intent: models.IntentPlaceOrder,
		Name:   prior.Name,
		Items:  items,
	}

	switch {
	case len(valid) == 0 && len(items) > 0:
		rec.ReplyText = fmt.Sprintf(replyUnavailable, strings.Join(missing, ", "), menuList(catalog))
	case len(valid) == 0:
		rec.ReplyText = fmt.Sprintf(replyAskForOrder, menuList(catalog))
	case prior.Name == "":
		rec.ReplyText = fmt.Sprintf(replyAskForName, joinItems(valid))
	default:
		rec.ReplyText = fmt.Sprintf(replyConfirmation, joinItems(valid), h.eta)
		rec.OrderIsValid = true
	}
	return rec
}

// provideNameHandler captures the caller's name and confirms a pending order.
type provideNameHandler struct {
	catalog menu.Catalog
	eta     string
	items   ItemFinder
	names   NameFinder
}

func (h *provideNameHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	name := prior.Name
	if name == "" {
		name, _ = h.names.Extract(utterance)
	}
	items := h.items.Extract(utterance)
	catalog := h.catalog.Items()

	rec := models.IntentRecord{
		Intent: models.IntentProvideName,
		Name:   name,
		Items:  items,
	}

	switch {
	case name != "" && len(items) > 0:
		valid, _ := partition(h.catalog, items)
		if len(valid) > 0 {
			rec.ReplyText = fmt.Sprintf(replyConfirmation, joinItems(valid), h.eta)
			rec.OrderIsValid = true
		} else {
			rec.ReplyText = fmt.Sprintf(replyNoValidItem, menuList(catalog))
		}
	case name != "":
		rec.ReplyText = fmt.Sprintf(replyHelloName, name, menuList(catalog))
	default:
		rec.ReplyText = replyNameRequired
	}
	return rec
}

// partition splits items into exact catalog names and leftovers.
func partition(catalog menu.Catalog, items []string) (valid, missing []string) {
	for _, item := range items {
		if catalog.Contains(item) {
			valid = append(valid, item)
		} else {
			missing = append(missing, item)
		}
	}
	return valid, missing
}
