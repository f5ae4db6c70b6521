package view

type AdminProductForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
	ImageURL    string
	Token       string
}

// Preview is the live card caption under the form.
func (f AdminProductForm) Preview() string {
	if f.Price == "" {
		return "Price · Stock"
	}
	stock := f.Stock
	if stock == "" {
		stock = "0"
	}
	return "₹" + f.Price + " · Stock: " + stock
}

type AdminProductPage struct {
	Flash       *Flash
	CartCount   int
	Form        AdminProductForm
	Message     string
	MessageKind FlashKind
	FieldErrors map[string]string
}
