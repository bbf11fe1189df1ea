package dto

type CreateBraRequest struct {
	Type     string `json:"type" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// UpdateBraRequest is a partial update; nil fields are left unchanged.
type UpdateBraRequest struct {
	Type     *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Size     *string `json:"size,omitempty" validate:"omitempty,min=1"`
	Quantity *int    `json:"quantity,omitempty"`
}
