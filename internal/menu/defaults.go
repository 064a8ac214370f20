// internal/menu/defaults.go
package menu

// nameWord captures a single Unicode word token.
const nameWord = `([\p{L}\p{M}\p{N}_]+)`

// DefaultOptions returns the built-in Damascus menu and resolver settings.
func DefaultOptions() Options {
	return Options{
		Items: []string{
			"دجاج مشوي",
			"دجاج مقلي",
			"شاورما دجاج",
			"شاورما لحم",
			"فلافل",
			"حمص",
			"فتوش",
			"تبولة",
			"كبة مقلية",
			"بيتزا",
			"برجر",
			"بطاطا مقلية",
			"عصير برتقال",
			"عصير ليمون",
			"كنافة",
		},
		Prices: map[string]string{
			"دجاج مشوي":   "45,000 ليرة",
			"دجاج مقلي":   "40,000 ليرة",
			"شاورما دجاج": "25,000 ليرة",
			"شاورما لحم":  "30,000 ليرة",
			"فلافل":       "8,000 ليرة",
			"حمص":         "12,000 ليرة",
			"فتوش":        "15,000 ليرة",
			"تبولة":       "15,000 ليرة",
			"كبة مقلية":   "20,000 ليرة",
			"بيتزا":       "35,000 ليرة",
			"برجر":        "30,000 ليرة",
			"بطاطا مقلية": "10,000 ليرة",
			"عصير برتقال": "12,000 ليرة",
			"عصير ليمون":  "10,000 ليرة",
		},
		DefaultPrice:     "10,000 ليرة",
		GreetingKeywords: []string{"مرحبا", "أهلا", "السلام عليكم", "صباح الخير", "مساء الخير"},
		MenuKeywords:     []string{"قائمة", "أطباق", "متوفر", "قائمة الطعام", "الطعام", "أكلات", "ماذا عندكم", "اعرف"},
		ItemStopwords: []string{
			"ان", "أن", "اطلب", "أطلب", "طلب", "عايز", "اريد", "أريد", "بدي",
			"حابب", "أحب", "أرغب", "من", "لو", "ممكن",
		},
		NameStopwords: []string{
			"ان", "أن", "اطلب", "أطلب", "طلب", "عايز", "اريد", "أريد", "بدي",
			"حابب", "أحب", "أرغب", "من", "لو", "ممكن", "اسمي", "أنا", "ضيف",
			"الطلب", "باسم",
		},
		RequestVerbs: []string{"اطلب", "أطلب", "طلب", "عايز", "اريد", "أريد", "بدي", "حابب", "أحب", "أرغب"},
		// commas, or a conjunction و opening a word
		SegmentDelimiters: `\s*[،,]\s*|\s+و\s*`,
		NamePatterns: []string{
			`ضيف\s+الطلب\s+باسم\s+` + nameWord,
			`الطلب\s+باسم\s+` + nameWord,
			`اسمي\s+` + nameWord,
			`(?:^|\s)[أا]نا\s+` + nameWord,
		},
		HistoryPattern: `اسمي\s+` + nameWord,
		Numerals:       "٠١٢٣٤٥٦٧٨٩",
		ETA:            "15 دقيقة",
		Contact: Contact{
			Phone:          "123456789",
			Hours:          "ساعات خدمة العملاء من 10 صباحاً حتى 11 مساءً يومياً.",
			Address:        "شارع الثورة، دمشق، سوريا.",
			ComplaintPhone: "011-123-4567",
		},
		Matching: MatchSettings{
			Threshold:      0.6,
			ContainedFloor: 0.8,
			ContainsFloor:  0.9,
		},
	}
}

// Default returns Settings built from DefaultOptions.
func Default() *Settings {
	s, err := New(DefaultOptions())
	if err != nil {
		panic("menu: invalid built-in settings: " + err.Error())
	}
	return s
}
