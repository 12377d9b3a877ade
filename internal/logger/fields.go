package logger

// Standard field names for structured logging.
const (
	FieldRequestID = "request_id"
	FieldConnID    = "conn_id"
	FieldComponent = "component"

	FieldMethod = "method"
	FieldPath   = "path"
	FieldType   = "type"

	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldCount      = "count"

	FieldSocket  = "socket"
	FieldAddress = "address"
	FieldFile    = "file"
)
