package responses

// Custom error codes
var (
	CodeInternalError     = "internal_error"
	CodeInvalidRequest    = "invalid_request"
	CodeNotFound          = "not_found"
	CodeMethodNotAllowed  = "method_not_allowed"
	CodeTooManyRequests   = "too_many_requests"
	CodeHomeDirUnresolved = "home_dir_unresolved"
	CodeInvalidPath       = "invalid_path"
	CodeDiskSpaceFailed   = "disk_space_failed"
	CodeLaunchFailed      = "launch_failed"
	CodeCommandFailed     = "command_failed"
	CodeCommandCanceled   = "command_canceled"
	CodeInvalidTarget     = "invalid_target"
	CodeInvalidOutput     = "invalid_output"
	CodeFileError         = "file_error"
)

// API / server response to indicate success
type Success struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
}

// API / server response to indicate error
type Error struct {
	Code         int    `json:"code"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
