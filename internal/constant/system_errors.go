package constant

// System level codes (1xxx)
const (
	CodeSuccess            = 0    // request handled
	CodeSystemError        = 1000 // unexpected server side failure
	CodeDatabaseError      = 1001 // database connection, query or transaction failure
	CodeRedisError         = 1002 // cache unavailable or timed out
	CodeInternalError      = 1003 // unexpected failure inside business logic
	CodeServiceUnavailable = 1004 // maintenance or overload
	CodeTimeout            = 1005 // request did not finish in time
)

// Parameter codes
const (
	CodeInvalidParams    = 1100 // body or query could not be parsed
	CodeMissingParams    = 1101 // required field absent
	CodeParamsRangeError = 1104 // value outside the allowed range
	CodeDuplicateRequest = 1105 // same request already handled
)

// Auth codes
const (
	CodeUnauthorized   = 1200 // missing credentials
	CodeTokenInvalid   = 1202 // internal token rejected
	CodeSignatureError = 1203 // webhook or request signature mismatch
	CodeAccessDenied   = 1204 // caller lacks permission
)
