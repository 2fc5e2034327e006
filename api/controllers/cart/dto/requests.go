package cartdto

// AddItemRequest adds one unit of a product. Catalog products take their
// price and image from the catalog.
type AddItemRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Price int    `json:"price" validate:"gte=0,lte=1000000000"`
	Image string `json:"image" validate:"max=2048"`
}

// ConfirmRequest carries the visitor's answer for a destructive action.
// A nil Confirm means no answer was given.
type ConfirmRequest struct {
	Confirm *bool `json:"confirm"`
}
