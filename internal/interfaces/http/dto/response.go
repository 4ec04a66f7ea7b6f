package dto

import "time"

// Response represents a standard API response
type Response struct {
	Success  bool          `json:"success"`
	Data     interface{}   `json:"data,omitempty"`
	Error    *ErrorInfo    `json:"error,omitempty"`
	Warnings []WarningInfo `json:"warnings,omitempty"`
	Meta     *Meta         `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// WarningInfo is a non-fatal consistency finding returned alongside a
// successful result, e.g. a reversal that drove stock negative.
type WarningInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationDetail pinpoints one invalid request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithWarnings creates a success response carrying
// consistency warnings the caller must surface.
func NewSuccessResponseWithWarnings(data interface{}, warnings []WarningInfo) Response {
	return Response{
		Success:  true,
		Data:     data,
		Warnings: warnings,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID creates an error response tagged with the
// request ID for correlation with server logs.
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
		},
	}
}

// NewValidationErrorResponse creates a 400-style error response with
// per-field details.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			Message:   message,
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
			Details:   details,
		},
	}
}

// ListRequest represents common list/pagination request parameters
type ListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// Limit returns the effective page size
func (r ListRequest) Limit() int {
	if r.PageSize <= 0 {
		return 50
	}
	return r.PageSize
}

// Offset returns the effective row offset
func (r ListRequest) Offset() int {
	if r.Page <= 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit()
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
