package request

type PostFolioItemRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Description string `json:"description" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
}

type RefundRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Description string `json:"description"`
}
