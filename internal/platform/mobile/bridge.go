package mobile

import (
	"encoding/json"
)

// Bridge structs for mobile data transfer
type MobileResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func createErrorResponse(err error) string {
	return encode(MobileResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func createSuccessResponse(data any) string {
	return encode(MobileResponse{
		Success: true,
		Data:    data,
	})
}

func encode(response MobileResponse) string {
	result, err := json.Marshal(response)
	if err != nil {
		fallback, _ := json.Marshal(MobileResponse{Error: "failed to encode response"})
		return string(fallback)
	}
	return string(result)
}
