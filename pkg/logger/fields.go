package logger

// Standard field names for consistent logging.
const (
	FieldService   = "service"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldRequestID = "request_id"
	FieldClientID  = "client_id"
	FieldGuideID   = "guide_id"
	FieldTourID    = "tour_id"
	FieldHandle    = "handle"
)
