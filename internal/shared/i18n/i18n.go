// Package i18n resolves user-facing messages for the two product languages.
// Only short, user-visible error strings are localized here; structured log
// output stays in English.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // default
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Locale identifies a negotiated UI language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// Match negotiates the best supported locale for an Accept-Language header.
// An empty or unparseable header falls back to English.
func Match(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return LocaleEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LocaleEnglish
	}
	_, idx, _ := matcher.Match(tags...)
	if supported[idx] == language.Arabic {
		return LocaleArabic
	}
	return LocaleEnglish
}

// Message keys for user-visible errors.
const (
	MsgUnauthorized        = "unauthorized"
	MsgInternalError       = "internal_error"
	MsgInsufficientCredits = "insufficient_credits"
	MsgInvalidSource       = "invalid_source"
	MsgConversionFailed    = "conversion_failed"
)

var messages = map[Locale]map[string]string{
	LocaleEnglish: {
		MsgUnauthorized:        "You must be signed in to perform this action",
		MsgInternalError:       "Something went wrong, please try again later",
		MsgInsufficientCredits: "You do not have enough credits for this action",
		MsgInvalidSource:       "The file link is not from a trusted location",
		MsgConversionFailed:    "The conversion could not be completed",
	},
	LocaleArabic: {
		MsgUnauthorized:        "يجب تسجيل الدخول لتنفيذ هذا الإجراء",
		MsgInternalError:       "حدث خطأ ما، يرجى المحاولة لاحقاً",
		MsgInsufficientCredits: "لا يوجد لديك رصيد كافٍ لهذا الإجراء",
		MsgInvalidSource:       "رابط الملف ليس من مصدر موثوق",
		MsgConversionFailed:    "تعذر إكمال عملية التحويل",
	},
}

// T returns the message for a key in the given locale, falling back to
// English, then to the key itself.
func T(locale Locale, key string) string {
	if m, ok := messages[locale]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[LocaleEnglish][key]; ok {
		return s
	}
	return key
}
