package dto

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
