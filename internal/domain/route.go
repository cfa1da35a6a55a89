package domain

// Маршруты витрины, на которые перенаправляется покупатель
const (
	RouteHome     = "/"
	RouteCheckout = "/checkout"
)
