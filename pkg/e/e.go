package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrBakeryURLRequired    = fmt.Errorf("BAKERY_API_URL is required")

	// Ошибки сессии
	ErrNoSession       = fmt.Errorf("session is not initialized")
	ErrSessionNotFound = fmt.Errorf("session not found")

	// Ошибки оформления заказа
	ErrEmptyOrder       = fmt.Errorf("nothing to order")
	ErrSubmitInProgress = fmt.Errorf("order submission already in progress")
	ErrCheckoutFailed   = fmt.Errorf("checkout failed")

	// Ошибки каталога
	ErrCatalogUnavailable = fmt.Errorf("catalog is unavailable")
	ErrCacheMiss          = fmt.Errorf("cache miss")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrInvalidQuantity   = fmt.Errorf("invalid quantity")
	ErrQuantityOverStock = fmt.Errorf("quantity exceeds stock")
	ErrMissingFields     = fmt.Errorf("missing required fields")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
