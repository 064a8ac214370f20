// internal/dialogue/replies.go
package dialogue

import (
	"fmt"
	"strings"

	"voice-order-workers/internal/nlu/textnorm"
)

const (
	// DefaultReply is used when a pass-through record carries no reply.
	DefaultReply = "عذرًا، لم أفهم ما تقصده."
	// UnknownReply is the apology sent when the classifier fails.
	UnknownReply = "عذراً، لم أفهم ما تقصده."
	// MissingNameReply asks for a name when an order cannot be committed.
	MissingNameReply = "من فضلك خبرنا باسمك."

	hotlinePlaceholder = "{hotline}"
	menuBullet         = "🍽️ "
)

const (
	replyWelcomeMenu = "أهلاً وسهلاً بك! عندنا قائمة متنوعة من الأطباق الشهية:\n\n%s\n\nشو بتحب تجرب؟"
	replyMenuOnly    = "أهلاً! عندنا قائمة متنوعة من الأطباق الشهية:\n\n%s\n\nشو بتحب تجرب؟"
	replyWelcome     = "أهلاً وسهلاً بك في مطعمنا! كيف يمكنني مساعدتك اليوم؟"

	replyUnavailable  = "عذراً، %s غير متوفر حالياً. الأطباق المتوفرة لدينا: %s. يرجى اختيار صنف من القائمة المتوفرة."
	replyAskForOrder  = "أهلاً! الأطباق المتوفرة لدينا: %s. من فضلك أخبرني ماذا تريد أن تطلب."
	replyAskForName   = "ممتاز! %s متوفر لدينا. من فضلك أخبرني باسمك لإكمال الطلب."
	replyConfirmation = "تم استلام طلبك %s! رقم الطلب: [سيتم تحديده], الوقت المتوقع: %s"

	replyNoValidItem  = "عذراً، الصنف المطلوب غير متوفر. الأطباق المتوفرة لدينا: %s."
	replyHelloName    = "أهلاً %s! الأطباق المتوفرة لدينا: %s. ما الذي ترغب بطلبه اليوم؟"
	replyNameRequired = "يرجى تزويدي باسمك."

	replyPhone        = "رقم خدمة العملاء هو %s."
	replyAddress      = "عنواننا: %s."
	replyPriceList    = "قائمة الأسعار الكاملة:\n%s"
	replyPrices       = "أسعارنا كالتالي: %s. الأسعار تشمل الضريبة!"
	replyQuestionHelp = "سؤالك مهم! يرجى توضيح السؤال أو التواصل مع خدمة العملاء."
)

// keywordRule selects reply when any keyword occurs in the utterance.
type keywordRule struct {
	keywords []string
	reply    string
}

// pickReply returns the reply of the first matching rule, or fallback.
func pickReply(utterance string, rules []keywordRule, fallback string) string {
	folded := textnorm.Fold(utterance)
	for _, r := range rules {
		if textnorm.ContainsAny(folded, r.keywords) {
			return r.reply
		}
	}
	return fallback
}

// joinItems renders items as natural Arabic: "a", "a و b", "a، b و c".
func joinItems(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " و " + items[1]
	default:
		return strings.Join(items[:len(items)-1], "، ") + " و " + items[len(items)-1]
	}
}

func menuList(items []string) string {
	return strings.Join(items, "، ")
}

func bulletedMenu(items []string) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = menuBullet + item
	}
	return strings.Join(out, "، ")
}

func priceLines(items []string, price func(string) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprintf("%s%s: %s", menuBullet, item, price(item))
	}
	return out
}
