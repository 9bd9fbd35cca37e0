package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAccount     = "account"
	FieldTxnType     = "txn_type"
	FieldAmountCents = "amount_cents"
	FieldSheetRef    = "sheet_ref"
	FieldYear        = "year"
	FieldMonth       = "month"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpRead      = "read"
	OpSummarize = "summarize"
	OpSync      = "sync"
	OpSweep     = "sweep"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
