package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderXRequestID     = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	ContextKeyLocale    = "locale"

	// Database table names
	TableUserCredits       = "user_credits"
	TableSubscriptions     = "subscriptions"
	TableUserSubscriptions = "user_subscriptions"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
)
