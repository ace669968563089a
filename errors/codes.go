package errors

// ErrorCode identifies an application error category in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1005

	ErrorCode_AI_ENRICHMENT_FAILED    ErrorCode = 2000
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 2001
	ErrorCode_AI_RESPONSE_UNPARSEABLE ErrorCode = 2002

	ErrorCode_SOURCE_RETRIEVAL_FAILED ErrorCode = 3000
	ErrorCode_SEARCH_INDEX_FAILED     ErrorCode = 3001
	ErrorCode_ANALYTICS_EXPORT_FAILED ErrorCode = 3002
	ErrorCode_QUEUE_FAILED            ErrorCode = 3003

	ErrorCode_DB_QUERY_FAILED      ErrorCode = 4000
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 4001

	ErrorCode_PROCESSING_FAILED ErrorCode = 5000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:          "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:         "UNAUTHENTICATED",
	ErrorCode_AI_ENRICHMENT_FAILED:    "AI_ENRICHMENT_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:  "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_RESPONSE_UNPARSEABLE: "AI_RESPONSE_UNPARSEABLE",
	ErrorCode_SOURCE_RETRIEVAL_FAILED: "SOURCE_RETRIEVAL_FAILED",
	ErrorCode_SEARCH_INDEX_FAILED:     "SEARCH_INDEX_FAILED",
	ErrorCode_ANALYTICS_EXPORT_FAILED: "ANALYTICS_EXPORT_FAILED",
	ErrorCode_QUEUE_FAILED:            "QUEUE_FAILED",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:    "DB_CONNECTION_FAILED",
	ErrorCode_PROCESSING_FAILED:       "PROCESSING_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
