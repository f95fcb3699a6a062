package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 15
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSONAPI = "application/vnd.api+json"
	ContentTypeJSON    = "application/json"
	ContentTypeForm    = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"

	// Cache
	DefaultCacheTTLSeconds = 3600

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Not Found"
	ErrMsgUnauthorized        = "Unauthorized"
	ErrMsgForbidden           = "Forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
