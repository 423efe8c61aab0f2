package log

// Common field names for structured logging.
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
	FieldItemName    = "item_name"
	FieldQuantity    = "quantity"
	FieldUnitCost    = "unit_cost"
	FieldUnitPrice   = "unit_price"
	FieldSaleID      = "sale_id"
	FieldSaleTotal   = "sale_total"
	FieldRangeStart  = "range_start"
	FieldRangeEnd    = "range_end"
	FieldLineCount   = "line_count"
	FieldImportedOK  = "imported_ok"
	FieldImportedBad = "imported_failed"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentImporter = "importer"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
)

// Standard operation names.
const (
	OpAddItem    = "add_item"
	OpRecordSale = "record_sale"
	OpImport     = "import"
	OpSummary    = "summary"
	OpTopSellers = "top_sellers"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
