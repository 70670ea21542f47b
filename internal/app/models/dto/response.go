package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-06-10T12:01:05.123Z"`
}

// SuccessResponse wraps data in the standard response envelope
func SuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// MessageResponse carries a plain status message
type MessageResponse struct {
	Message string `json:"message" example:"Operación realizada con éxito"`
}

// PaginationInfo holds paging metadata for list responses
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// PaginatedData combines a result set with its paging metadata
type PaginatedData struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginatedResponse wraps a paginated result set in the standard envelope
func PaginatedResponse(items interface{}, pagination PaginationInfo) *APIResponse {
	return SuccessResponse(PaginatedData{Items: items, Pagination: pagination})
}
