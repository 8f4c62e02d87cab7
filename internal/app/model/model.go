package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&ShopItemCategory{},
		&ShopItem{},
		&Order{},
		&OrderItem{},
	}
}
