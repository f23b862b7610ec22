package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are namespaced by module prefix, e.g. "SCH_001".
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Short aliases used by the convenience factories.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeForbidden    = ErrCodeForbidden
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Scheme Module Error Codes
const (
	ErrCodeSchemeNotFound      ErrorCode = "SCH_001"
	ErrCodeSchemeInvalid       ErrorCode = "SCH_002"
	ErrCodeSchemeAlreadyExists ErrorCode = "SCH_003"
	ErrCodeDeadlineInvalid     ErrorCode = "SCH_004"
	ErrCodeSeedFileInvalid     ErrorCode = "SCH_005"
)

// Notification Module Error Codes
const (
	ErrCodeNotificationNotFound ErrorCode = "NTF_001"
	ErrCodeScanFailed           ErrorCode = "NTF_002"
	ErrCodeScheduleInvalid      ErrorCode = "NTF_003"
	ErrCodePublishFailed        ErrorCode = "NTF_004"
)

// Account Module Error Codes
const (
	ErrCodeUserNotFound       ErrorCode = "USR_001"
	ErrCodeUserAlreadyExists  ErrorCode = "USR_002"
	ErrCodeInvalidCredentials ErrorCode = "USR_003"
	ErrCodeProfileInvalid     ErrorCode = "USR_004"
	ErrCodeTokenInvalid       ErrorCode = "USR_005"
	ErrCodeTokenExpired       ErrorCode = "USR_006"
)

// Assistant Module Error Codes
const (
	ErrCodeAssistantUnavailable  ErrorCode = "AST_001"
	ErrCodeAssistantBadResponse  ErrorCode = "AST_002"
	ErrCodeAssistantInputInvalid ErrorCode = "AST_003"
	ErrCodeHistoryUnavailable    ErrorCode = "AST_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusForbidden,

	ErrCodeSchemeNotFound:      http.StatusNotFound,
	ErrCodeSchemeInvalid:       http.StatusBadRequest,
	ErrCodeSchemeAlreadyExists: http.StatusConflict,
	ErrCodeDeadlineInvalid:     http.StatusBadRequest,
	ErrCodeSeedFileInvalid:     http.StatusInternalServerError,

	ErrCodeNotificationNotFound: http.StatusNotFound,
	ErrCodeScanFailed:           http.StatusInternalServerError,
	ErrCodeScheduleInvalid:      http.StatusInternalServerError,
	ErrCodePublishFailed:        http.StatusInternalServerError,

	ErrCodeUserNotFound:       http.StatusNotFound,
	ErrCodeUserAlreadyExists:  http.StatusConflict,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeProfileInvalid:     http.StatusBadRequest,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,

	ErrCodeAssistantUnavailable:  http.StatusServiceUnavailable,
	ErrCodeAssistantBadResponse:  http.StatusBadGateway,
	ErrCodeAssistantInputInvalid: http.StatusBadRequest,
	ErrCodeHistoryUnavailable:    http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeSchemeNotFound:      "scheme not found",
	ErrCodeSchemeInvalid:       "invalid scheme",
	ErrCodeSchemeAlreadyExists: "scheme already exists",
	ErrCodeDeadlineInvalid:     "invalid deadline",
	ErrCodeSeedFileInvalid:     "invalid catalog seed file",

	ErrCodeNotificationNotFound: "notification not found",
	ErrCodeScanFailed:           "deadline scan failed",
	ErrCodeScheduleInvalid:      "invalid scan schedule",
	ErrCodePublishFailed:        "event publish failed",

	ErrCodeUserNotFound:       "user not found",
	ErrCodeUserAlreadyExists:  "user already exists",
	ErrCodeInvalidCredentials: "invalid email or password",
	ErrCodeProfileInvalid:     "invalid profile",
	ErrCodeTokenInvalid:       "invalid token",
	ErrCodeTokenExpired:       "token expired",

	ErrCodeAssistantUnavailable:  "assistant backend unavailable",
	ErrCodeAssistantBadResponse:  "assistant backend returned an invalid response",
	ErrCodeAssistantInputInvalid: "invalid assistant input",
	ErrCodeHistoryUnavailable:    "conversation history unavailable",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
