package logging

// Standard field names so log output stays filterable across components.
const (
	FieldFile       = "file_path"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldLineIndex  = "line_index"
	FieldAmount     = "amount"
	FieldMerchant   = "merchant"
	FieldCategory   = "category"
	FieldBucket     = "bucket"
	FieldStrategy   = "strategy"
	FieldPage       = "page"
	FieldRequestID  = "request_id"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
