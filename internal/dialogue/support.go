// internal/dialogue/support.go
package dialogue

import (
	"fmt"
	"strings"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/models"
)

var cancelRules = []keywordRule{
	{
		keywords: []string{"إلغاء", "إلغي", "ألغى", "ألغيت"},
		reply:    "تم إلغاء طلبك. إذا كنت تريد إعادة الطلب، يمكنك طلب جديد في أي وقت.",
	},
	{
		keywords: []string{"لا أريد", "لا اريد", "بدي ألغى", "بدي إلغاء"},
		reply:    "فهمت! تم إلغاء طلبك. إذا غيرت رأيك، يمكنك طلب جديد في أي وقت.",
	},
	{
		keywords: []string{"تغيير", "غير", "بدل"},
		reply:    "إذا كنت تريد تغيير طلبك، يمكنك طلب جديد بالتفاصيل المطلوبة.",
	},
}

const cancelDefault = "تم إلغاء طلبك. شكراً لك!"

// cancelHandler never carries order state forward.
type cancelHandler struct{}

func (cancelHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	return models.IntentRecord{
		Intent:    models.IntentCancelOrder,
		Name:      prior.Name,
		Items:     []string{},
		ReplyText: pickReply(utterance, cancelRules, cancelDefault),
	}
}

const (
	thanksReply   = "نحنا بخدمتك دايماً! إن شاء الله يعجبك طلبك الجاي."
	greetReply    = "أهلاً وسهلاً بك! كيف يمكنني مساعدتك اليوم؟"
	positiveReply = "شكراً لك! نحن سعداء أن نقدم لك أفضل خدمة ممكنة."
)

var (
	thanksKeywords   = []string{"شكرا", "شكراً", "مشكور", "مشكورة", "أشكرك", "أشكركم"}
	greetKeywords    = []string{"أهلا", "أهلاً", "مرحبا", "مرحباً"}
	positiveKeywords = []string{"ممتاز", "رائع", "جميل", "حلو"}
)

// gratitudeHandler answers thanks. A greeting that reached this handler is
// relabelled as a greeting turn; downstream consumers depend on that label.
type gratitudeHandler struct{}

func (gratitudeHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	intent := models.IntentGratitude
	reply := pickReply(utterance, []keywordRule{
		{keywords: thanksKeywords, reply: thanksReply},
		{keywords: greetKeywords, reply: greetReply},
		{keywords: positiveKeywords, reply: positiveReply},
	}, thanksReply)
	if reply == greetReply {
		intent = models.IntentGreeting
	}

	return models.IntentRecord{
		Intent:    intent,
		Name:      prior.Name,
		Items:     []string{},
		ReplyText: reply,
	}
}

var complaintRules = []keywordRule{
	{
		keywords: []string{"تأخر", "بطيء", "بطيئة", "بطيئ", "بطيئين"},
		reply:    "عذراً على التأخير! نحن نعمل بجد لتسريع الطلبات. الوقت المتوقع للطلبات هو 15-20 دقيقة. إذا كان طلبك متأخر أكثر من ذلك، يرجى الاتصال بنا على الرقم: " + hotlinePlaceholder,
	},
	{
		keywords: []string{"خطأ", "غلط", "مشكلة", "مشاكل"},
		reply:    "عذراً على المشكلة! نحن نعتذر عن أي إزعاج. يرجى الاتصال بنا على الرقم: " + hotlinePlaceholder + " وسنحل المشكلة فوراً",
	},
	{
		keywords: []string{"سيء", "رديء", "مزعج", "مزعجة"},
		reply:    "نعتذر بشدة عن التجربة السيئة! نحن نعمل على تحسين خدمتنا باستمرار. يرجى الاتصال بنا على الرقم: " + hotlinePlaceholder + " لنسمع منك ونحسن خدمتنا",
	},
	{
		keywords: []string{"سعر", "غالي", "مكلف", "تكلفة"},
		reply:    "نفهم قلقك بخصوص الأسعار! نحن نقدم أفضل جودة بأفضل سعر ممكن. يمكنك الاطلاع على قائمة الأسعار أو الاتصال بنا للمناقشة",
	},
	{
		keywords: []string{"جودة", "طعام", "مذاق", "طعم"},
		reply:    "نعتذر إذا لم تكن جودة الطعام كما توقعتم! نحن نستخدم أفضل المكونات الطازجة. يرجى الاتصال بنا على الرقم: " + hotlinePlaceholder + " لنسمع ملاحظاتكم",
	},
}

const complaintDefault = "نعتذر عن أي إزعاج! نحن هنا لمساعدتك. يرجى الاتصال بنا على الرقم: " + hotlinePlaceholder + " أو زيارة مطعمنا مباشرة لنحل المشكلة"

// complaintHandler apologises and points the caller at the hotline.
type complaintHandler struct {
	hotline string
}

func (h *complaintHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	reply := pickReply(utterance, complaintRules, complaintDefault)
	return models.IntentRecord{
		Intent:    models.IntentComplaint,
		Name:      prior.Name,
		Items:     []string{},
		ReplyText: strings.ReplaceAll(reply, hotlinePlaceholder, h.hotline),
	}
}

// questionHandler answers hours, phone, address and pricing questions.
type questionHandler struct {
	settings *menu.Settings
}

func (h *questionHandler) Handle(utterance string, prior models.IntentRecord) models.IntentRecord {
	contact := h.settings.Contact()
	catalog := h.settings.Catalog().Items()
	lines := priceLines(catalog, h.settings.Price)

	// the full price list phrase contains the generic price keyword, so it
	// has to be checked first
	reply := pickReply(utterance, []keywordRule{
		{keywords: []string{"مواعيد", "ساعات العمل", "متى"}, reply: contact.Hours},
		{keywords: []string{"رقم", "هاتف", "اتصال"}, reply: fmt.Sprintf(replyPhone, contact.Phone)},
		{keywords: []string{"عنوان", "موقع", "اين"}, reply: fmt.Sprintf(replyAddress, contact.Address)},
		{keywords: []string{"قائمة الاسعار"}, reply: fmt.Sprintf(replyPriceList, strings.Join(lines, "\n"))},
		{keywords: []string{"اسعار", "سعر", "التكلفة", "كم يكلف"}, reply: fmt.Sprintf(replyPrices, strings.Join(lines, "، "))},
	}, replyQuestionHelp)

	return models.IntentRecord{
		Intent:    models.IntentQuestion,
		Name:      prior.Name,
		Items:     []string{},
		ReplyText: reply,
	}
}
