package cart

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"min=1"`
}

type setQtyRequest struct {
	Qty int `json:"qty"`
}
