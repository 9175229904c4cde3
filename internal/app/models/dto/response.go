package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a payload together with a human readable message
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ListResponse wraps a collection payload with its total count
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}
