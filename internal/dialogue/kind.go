// internal/dialogue/kind.go

// Package dialogue turns an utterance and the classifier's intent label into
// a finalized IntentRecord. Each intent kind is bound to one Handler;
// handlers never touch the order store.
package dialogue

import "voice-order-workers/internal/models"

// Kind is the closed set of intents the resolver has a policy for.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindGreetingAndMenu
	KindPlaceOrder
	KindProvideName
	KindCancelOrder
	KindGratitude
	KindComplaint
	KindQuestion
)

var kindLabels = map[Kind]string{
	KindGreetingAndMenu: models.IntentGreetingAndMenu,
	KindPlaceOrder:      models.IntentPlaceOrder,
	KindProvideName:     models.IntentProvideName,
	KindCancelOrder:     models.IntentCancelOrder,
	KindGratitude:       models.IntentGratitude,
	KindComplaint:       models.IntentComplaint,
	KindQuestion:        models.IntentQuestion,
}

var labelKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindLabels))
	for k, l := range kindLabels {
		m[l] = k
	}
	return m
}()

// ParseKind maps a classifier label to its Kind. The lookup is exact;
// anything else is KindUnrecognized.
func ParseKind(label string) Kind {
	if k, ok := labelKinds[label]; ok {
		return k
	}
	return KindUnrecognized
}

func (k Kind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return "unrecognized"
}

// Kinds lists every recognized kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindGreetingAndMenu,
		KindPlaceOrder,
		KindProvideName,
		KindCancelOrder,
		KindGratitude,
		KindComplaint,
		KindQuestion,
	}
}
