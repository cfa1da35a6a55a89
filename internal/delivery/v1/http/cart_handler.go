package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// CartHandler обслуживает заказ покупателя: количества, гидратацию, очистку и уведомления.
type CartHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCartHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CartHandler {
	return &CartHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// getCart
//
//	@Summary	Текущий заказ покупателя
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	h.writeCart(w, r.Context(), sess)
}

// setQuantity
//
//	@Summary	Изменить количество товара в заказе
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Param		name			path		string			true	"Название товара"
//	@Param		body			body		SetQuantityReq	true	"Новое количество, от 0 до остатка"
//	@Success	200				{object}	CartResponse
//	@Failure	400				{object}	ErrorResponse	"Количество вне допустимого диапазона"
//	@Failure	404				{object}	ErrorResponse	"Товар не найден"
//	@Failure	503				{object}	ErrorResponse	"Каталог недоступен"
//	@Router		/cart/{name} [put]
func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	var req SetQuantityReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	if req.Quantity == nil {
		WriteError(w, e.Wrap("quantity", e.ErrMissingFields))
		return
	}

	product, err := h.findProduct(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	qty := *req.Quantity
	if qty < 0 {
		WriteError(w, e.Wrap(product.Name, e.ErrInvalidQuantity))
		return
	}
	if qty > product.Stock {
		WriteError(w, e.Wrap(product.Name, e.ErrQuantityOverStock))
		return
	}

	sess.Order().SetQuantity(product.Name, qty)
	h.writeCart(w, r.Context(), sess)
}

// increment
//
//	@Summary	Увеличить количество товара на 1, не больше остатка
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Param		name			path		string			true	"Название товара"
//	@Success	200				{object}	CartResponse
//	@Failure	404				{object}	ErrorResponse	"Товар не найден"
//	@Failure	503				{object}	ErrorResponse	"Каталог недоступен"
//	@Router		/cart/{name}/increment [post]
func (h *CartHandler) increment(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	product, err := h.findProduct(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !sess.Order().Increment(product.Name, product.Stock) {
		h.logger.Debugf("increment of %q ignored: stock limit %d reached", product.Name, product.Stock)
	}

	h.writeCart(w, r.Context(), sess)
}

// decrement
//
//	@Summary	Уменьшить количество товара на 1, не меньше 0
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Param		name			path		string			true	"Название товара"
//	@Success	200				{object}	CartResponse
//	@Failure	400				{object}	ErrorResponse	"Некорректное название"
//	@Router		/cart/{name}/decrement [post]
func (h *CartHandler) decrement(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	name, err := productName(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Уменьшение не зависит от остатков, каталог нужен только для канонического имени
	if product, ok := h.catalogUsecase.Peek().Find(name); ok {
		name = product.Name
	}

	sess.Order().Decrement(name)
	h.writeCart(w, r.Context(), sess)
}

// setOrder заменяет заказ целиком без проверки, как при восстановлении сохранённого состояния.
//
//	@Summary	Заменить заказ целиком
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Param		body			body		SetOrderReq		true	"Заказ: название товара -> количество"
//	@Success	200				{object}	CartResponse
//	@Failure	400				{object}	ErrorResponse	"Некорректное тело запроса"
//	@Router		/cart [put]
func (h *CartHandler) setOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	var req SetOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	sess.Order().SetAll(domain.Order(req.Order))
	h.writeCart(w, r.Context(), sess)
}

// clearCart
//
//	@Summary	Очистить заказ
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	sess.Order().Clear()
	h.writeCart(w, r.Context(), sess)
}

// dismissNotification
//
//	@Summary	Скрыть текущее уведомление
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Success	200				{object}	CartResponse
//	@Router		/notification [delete]
func (h *CartHandler) dismissNotification(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	sess.Dismiss()
	h.writeCart(w, r.Context(), sess)
}

// findProduct ищет товар из пути запроса в каталоге.
func (h *CartHandler) findProduct(r *http.Request) (*domain.Product, error) {
	name, err := productName(r)
	if err != nil {
		return nil, err
	}

	catalog, err := h.catalogUsecase.Products(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		return nil, err
	}

	product, ok := catalog.Find(name)
	if !ok {
		return nil, e.Wrap(name, e.ErrProductNotFound)
	}

	return &product, nil
}

// writeCart отвечает текущим состоянием корзины. Если каталог недоступен, сумма равна 0.00.
func (h *CartHandler) writeCart(w http.ResponseWriter, ctx context.Context, sess *usecase.Session) {
	catalog, err := h.catalogUsecase.Products(ctx)
	if err != nil {
		h.logger.Warnf("Cart total without catalog: %v", e.Wrap(whereami.WhereAmI(), err))
		catalog = nil
	}

	WriteSuccess(w, http.StatusOK, ToCartResponse(sess, catalog))
}
