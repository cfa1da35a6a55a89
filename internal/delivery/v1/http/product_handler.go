package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// getProducts
//
//	@Summary	Каталог пекарни
//	@Tags		products
//	@Produce	json
//	@Param		X-Session-ID	header		string			false	"Идентификатор сессии, создаётся при первом запросе"
//	@Success	200				{object}	CatalogResponse
//	@Failure	503				{object}	ErrorResponse	"API пекарни недоступно и каталог ещё не загружен"
//	@Router		/products [get]
func (p *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	catalog, err := p.catalogUsecase.Products(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ToCatalogResponse(catalog))
}
