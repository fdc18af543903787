package middleware

import (
	"github.com/gin-gonic/gin"

	"sharayeh/internal/shared/constants"
	"sharayeh/internal/shared/i18n"
)

// Locale negotiates the response language from Accept-Language and stores it
// in the request context. English is the fallback.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.Match(c.GetHeader(constants.HeaderAcceptLanguage))
		c.Set(constants.ContextKeyLocale, string(locale))
		c.Next()
	}
}

// LocaleFrom extracts the negotiated locale from the gin context.
func LocaleFrom(c *gin.Context) i18n.Locale {
	if v := c.GetString(constants.ContextKeyLocale); v != "" {
		return i18n.Locale(v)
	}
	return i18n.LocaleEnglish
}
