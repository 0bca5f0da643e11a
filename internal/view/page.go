package view

// Page is everything the storefront UI shows at one moment
type Page struct {
	Revision uint64 `json:"revision"`

	Query        string        `json:"query"`
	Category     string        `json:"category"`
	Categories   []string      `json:"categories"`
	Products     []ProductCard `json:"products"`
	CatalogError string        `json:"catalog_error,omitempty"`
	// CatalogLoadedAt is the local time of the last successful catalog fetch
	CatalogLoadedAt string `json:"catalog_loaded_at,omitempty"`

	DrawerOpen    bool           `json:"drawer_open"`
	CartCount     int            `json:"cart_count"`
	CartLines     []CartLineView `json:"cart_lines"`
	Subtotal      string         `json:"subtotal"`
	ShippingLabel string         `json:"shipping_label"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	// FreeShippingOver is the subtotal above which shipping is free
	FreeShippingOver string `json:"free_shipping_over"`

	Message          *Message `json:"message,omitempty"`
	ReceiptAvailable bool     `json:"receipt_available"`
}

// ProductCard is one tile of the catalog grid
type ProductCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Price       string `json:"price"`
}

// CartLineView is one row of the cart drawer. Lines whose product left the
// catalog have Available=false and only support removal.
type CartLineView struct {
	ProductID int64  `json:"product_id"`
	Available bool   `json:"available"`
	Title     string `json:"title"`
	Image     string `json:"image,omitempty"`
	UnitPrice string `json:"unit_price,omitempty"`
	Quantity  int    `json:"quantity"`
	Amount    string `json:"amount,omitempty"`
}

// MessageKind distinguishes inline checkout feedback
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the inline checkout feedback
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}
