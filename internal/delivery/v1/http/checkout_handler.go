package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase, logger: logger}
}

// submit
//
//	@Summary	Оформить заказ
//	@Tags		checkout
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Success	200				{object}	CheckoutResponse	"Заказ принят, переход на страницу подтверждения"
//	@Failure	404				{object}	ErrorResponse		"Сессия закрыта"
//	@Failure	409				{object}	ErrorResponse		"Заказ уже отправляется"
//	@Failure	422				{object}	ErrorResponse		"Заказ пуст"
//	@Failure	502				{object}	ErrorResponse		"API пекарни отклонило заказ или недоступно"
//	@Router		/checkout [post]
func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		WriteError(w, e.ErrNoSession)
		return
	}

	res, err := h.checkoutUsecase.Submit(r.Context(), sess)
	if err != nil {
		if !errors.Is(err, e.ErrEmptyOrder) {
			h.logger.Warnf("%s", err.Error())
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ToCheckoutResponse(res))
}
