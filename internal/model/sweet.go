package model

// Sweet is one inventory item as served by the shop API. The ID is
// assigned server-side and treated as opaque by the client; it is never
// generated or guessed locally.
//
// Fields:
//  ID          – server-assigned identifier.
//  Name        – display name.
//  Category    – free-text category (not an enum).
//  Price       – unit price, never negative.
//  Quantity    – units in stock, never negative. The server rejects a
//                purchase that would drive this below zero; the client
//                must surface that rejection, not clamp.
//  Description – optional long text.
//  Image       – optional image reference.
type Sweet struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// InStock reports whether at least one unit is available.
func (s Sweet) InStock() bool {
	return s.Quantity > 0
}

// SweetInput is the payload for create and update operations. It carries
// every Sweet field except the identifier, which only the server assigns.
type SweetInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// Validate checks the input before it is sent to the server. The server
// validates again and remains authoritative.
func (in SweetInput) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Category == "" {
		return ErrCategoryRequired
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
