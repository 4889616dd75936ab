package inventory

// DeductStock descuenta qty del stock actual con piso en cero (servicio de dominio).
func DeductStock(stock, qty int) int {
	if qty <= 0 {
		return stock
	}
	if qty >= stock {
		return 0
	}
	return stock - qty
}
