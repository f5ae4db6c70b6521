package view

type ProductCard struct {
	ID          int64
	Name        string
	Description string
	Price       string // "₹2499"
	Stock       int
	ImageURL    string
	Snapshot    string // signed payload posted by "Add to cart"
}

type CartLine struct {
	ID        int64
	Name      string
	UnitPrice string
	Quantity  int
}

type CartPanel struct {
	Lines []CartLine
	Count int
	Total string // "₹4998.00", or "₹0" when empty
}

func (p CartPanel) Empty() bool { return len(p.Lines) == 0 }

type CatalogPage struct {
	Flash     *Flash
	CartCount int
	Loading   bool
	Products  []ProductCard
	Cart      CartPanel
}

// PlaceholderImage is shown for products without an image_url.
const PlaceholderImage = "https://images.pexels.com/photos/5632399/pexels-photo-5632399.jpeg?auto=compress&cs=tinysrgb&w=800"
