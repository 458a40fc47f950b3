package domain

// CreditPackage represents a purchasable credit bundle. Prices and credit
// grants are resolved from the system-config store with compiled-in fallbacks.
type CreditPackage struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Credits int     `json:"credits"`
}
