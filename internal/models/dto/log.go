package dto

type LogActionRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message" validate:"required"`
}
