package models

// Cart est stocké dans Redis sous la clé "cart:<user_id>" (tableau JSON d'items).
// Un seul panier par utilisateur, une seule ligne par produit.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItemView est une ligne de panier enrichie avec les données produit
// lues au moment de la requête (jamais stockées dans Redis).
type CartItemView struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
