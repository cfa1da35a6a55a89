package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CheckoutUseCase отправляет заказ сессии в API пекарни и применяет последствия результата.
type CheckoutUseCase struct {
	api      BakeryAPI
	catalog  CatalogUC
	producer EventProducer // может быть nil, тогда события не публикуются
	logger   logger.Logger
	hooks    CheckoutHooks

	submitTimeout time.Duration
	wg            sync.WaitGroup // фоновые публикации событий
}

func NewCheckoutUC(
	api BakeryAPI,
	catalog CatalogUC,
	producer EventProducer,
	logger logger.Logger,
	submitTimeout time.Duration,
	hooks CheckoutHooks,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		api:           api,
		catalog:       catalog,
		producer:      producer,
		logger:        logger,
		hooks:         hooks,
		submitTimeout: submitTimeout,
	}
}

// Stop дожидается завершения фоновых публикаций событий.
// Вызывается до закрытия продюсера.
func (c *CheckoutUseCase) Stop() {
	c.wg.Wait()
}

// Submit оформляет заказ сессии.
//
// Пустой заказ не отправляется: покупатель получает предупреждение, возвращается e.ErrEmptyOrder.
// Повторный вызов во время отправки возвращает e.ErrSubmitInProgress.
// При успехе заказ очищается, остатки в каталоге уменьшаются, каталог перезапрашивается,
// покупатель перенаправляется на страницу подтверждения.
// При ошибке заказ и каталог не меняются, покупатель получает одно уведомление с фиксированным текстом.
// Отмена ctx не прерывает уже начатую отправку: она ограничена только submitTimeout.
func (c *CheckoutUseCase) Submit(ctx context.Context, sess *Session) (*CheckoutRes, error) {
	const op = "CheckoutUseCase.Submit"

	if sess == nil {
		return nil, e.Wrap(op, e.ErrNoSession)
	}

	items := sess.Order().Items()
	if len(items) == 0 {
		sess.Notify(domain.NotificationWarning, MsgNothingToOrder)
		return nil, e.Wrap(op, e.ErrEmptyOrder)
	}

	if err := sess.beginSubmit(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if c.hooks.OnMutate != nil {
		c.hooks.OnMutate(items)
	}

	// Сумма считается до очистки заказа, чтобы попасть в ответ и событие
	total := Total(sess.Order().Order(), c.catalog.Peek())

	// Пекарня могла уже принять заказ, поэтому разрыв соединения покупателя не отменяет отправку
	subCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.submitTimeout)
	defer cancel()

	if err := c.api.PlaceOrder(subCtx, items); err != nil {
		sess.finishSubmit(CheckoutFailure)
		c.logger.Warnf("Failed to place order (session: %s): %v", sess.ID, e.Wrap(op, err))

		if !sess.Closed() {
			sess.Notify(domain.NotificationError, MsgCheckoutFailed)
		}
		if c.hooks.OnError != nil {
			c.hooks.OnError(err)
		}

		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrCheckoutFailed, err))
	}

	// Заказ принят пекарней: общий каталог обновляется даже для закрытой сессии
	c.catalog.PatchStock(items)
	if err := c.catalog.Invalidate(subCtx); err != nil {
		c.logger.Warnf("Failed to refresh catalog after order: %v", e.Wrap(op, err))
	}

	c.publishOrderPlaced(sess.ID, items, total)

	if sess.Closed() {
		sess.finishSubmit(CheckoutSuccess)
		c.logger.Infof("Session %s closed before order completed, ignoring result", sess.ID)
		return NewCheckoutRes(items, total, domain.RouteCheckout), nil
	}

	sess.Order().Clear()
	sess.Dismiss()
	if c.hooks.OnSuccess != nil {
		c.hooks.OnSuccess(items)
	}
	sess.Navigate(domain.RouteCheckout)
	sess.finishSubmit(CheckoutSuccess)

	c.logger.Infof("Order placed (session: %s, items: %d, total: %s)", sess.ID, len(items), total)
	return NewCheckoutRes(items, total, domain.RouteCheckout), nil
}

// publishOrderPlaced публикует событие в фоне, ошибки только логируются. Stop дожидается публикации.
func (c *CheckoutUseCase) publishOrderPlaced(sessionID string, items []domain.OrderItem, total string) {
	const op = "CheckoutUseCase.publishOrderPlaced"

	if c.producer == nil {
		return
	}

	event := NewOrderPlacedEvent(sessionID, items, total)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.producer.PublishOrderPlaced(bgCtx, event); err != nil {
			c.logger.Warnf("Failed to publish order event %s: %v", event.EventID, e.Wrap(op, err))
		}
	}()
}
