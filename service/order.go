package service

import (
	"context"
	"strings"

	"github.com/raywall/bar-order-service/models"
	"github.com/raywall/bar-order-service/pkg/apperr"
	"github.com/raywall/bar-order-service/pkg/metrics"
	"github.com/raywall/bar-order-service/pkg/notify"
	"github.com/raywall/bar-order-service/repository"
	"github.com/rs/zerolog/log"
)

// MaxQuantity limita a quantidade de uma linha do pedido.
const MaxQuantity = 999

// ItemRequest é um item pedido pelo cliente. Preço não faz parte: o valor
// vem sempre do cardápio.
type ItemRequest struct {
	MenuID   string `json:"menuId"`
	Quantity int    `json:"quantity"`
	Remarks  string `json:"remarks,omitempty"`
	BlendID  string `json:"blendId,omitempty"`
}

// OrderService orquestra a criação e a leitura de pedidos.
type OrderService struct {
	patrons    *repository.PatronRepository
	menu       *repository.MenuRepository
	orders     *repository.OrderRepository
	dispatcher *notify.Dispatcher
	recorder   *metrics.Recorder
}

// NewOrderService monta o serviço; dispatcher e recorder podem ser nil.
func NewOrderService(
	patrons *repository.PatronRepository,
	menu *repository.MenuRepository,
	orders *repository.OrderRepository,
	dispatcher *notify.Dispatcher,
	recorder *metrics.Recorder,
) *OrderService {
	return &OrderService{
		patrons:    patrons,
		menu:       menu,
		orders:     orders,
		dispatcher: dispatcher,
		recorder:   recorder,
	}
}

// CreateOrder cria um pedido `pending` para um patron do tenant.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID, patronID string, items []ItemRequest) (*models.Order, error) {
	patronID = strings.TrimSpace(patronID)
	if patronID == "" {
		return nil, apperr.Validation("patronId is required")
	}
	if len(items) == 0 {
		return nil, apperr.Validation("items must contain at least one entry")
	}
	for i, it := range items {
		if strings.TrimSpace(it.MenuID) == "" {
			return nil, apperr.Validation("items[%d].menuId is required", i)
		}
		if it.Quantity <= 0 {
			return nil, apperr.Validation("items[%d].quantity must be greater than zero", i)
		}
		if it.Quantity > MaxQuantity {
			return nil, apperr.Validation("items[%d].quantity must not exceed %d", i, MaxQuantity)
		}
	}

	patron, err := s.patrons.Get(ctx, tenantID, patronID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.OrderLine, 0, len(items))
	for i, it := range items {
		line, err := s.resolveLine(ctx, i, it)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	total, ok := models.SumSubtotals(lines)
	if !ok {
		return nil, apperr.Validation("order total exceeds the supported range")
	}

	order := &models.Order{
		ID:         s.orders.NewID(),
		PatronID:   patron.ID,
		PatronName: patron.Name,
		Items:      lines,
		Total:      total,
		Status:     models.OrderPending,
		CreatedAt:  s.orders.Now(),
	}
	if err := s.orders.Put(ctx, tenantID, order); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Str("patron_id", order.PatronID).
		Int64("total", order.Total).
		Msg("order created")
	s.recorder.Record(metrics.OrderCreated, 1)
	s.recorder.Record(metrics.OrderTotal, float64(order.Total))

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notify.FromOrder(tenantID, order))
	}
	return order, nil
}

func (s *OrderService) resolveLine(ctx context.Context, i int, it ItemRequest) (models.OrderLine, error) {
	menuID := strings.TrimSpace(it.MenuID)
	item, err := s.menu.GetMenuItem(ctx, menuID)
	if apperr.Is(err, apperr.KindNotFound) {
		return models.OrderLine{}, apperr.Validation("items[%d]: menu item %s is not available", i, menuID)
	}
	if err != nil {
		return models.OrderLine{}, err
	}
	if !item.IsActive {
		return models.OrderLine{}, apperr.Validation("items[%d]: menu item %s is not available", i, menuID)
	}

	subtotal, ok := models.LineSubtotal(item.Price, it.Quantity)
	if !ok {
		return models.OrderLine{}, apperr.Validation("items[%d]: subtotal exceeds the supported range", i)
	}

	line := models.OrderLine{
		MenuID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: it.Quantity,
		Subtotal: subtotal,
		Remarks:  strings.TrimSpace(it.Remarks),
		Recipe:   item.Recipe,
	}

	if blendID := strings.TrimSpace(it.BlendID); blendID != "" {
		if len(item.AvailableBlends) > 0 && !item.OffersBlend(blendID) {
			return models.OrderLine{}, apperr.Validation("items[%d]: blend %s is not offered for %s", i, blendID, item.Name)
		}
		blend, err := s.menu.GetBlend(ctx, blendID)
		if apperr.Is(err, apperr.KindNotFound) {
			return models.OrderLine{}, apperr.Validation("items[%d]: blend %s is not available", i, blendID)
		}
		if err != nil {
			return models.OrderLine{}, err
		}
		if !blend.IsActive {
			return models.OrderLine{}, apperr.Validation("items[%d]: blend %s is not available", i, blendID)
		}
		line.BlendID = blend.ID
		line.BlendName = blend.Name
	}
	return line, nil
}

// ListOrders devolve os pedidos do tenant, ou só os de um patron, do mais
// recente ao mais antigo.
func (s *OrderService) ListOrders(ctx context.Context, tenantID, patronID string) ([]models.Order, error) {
	if patronID = strings.TrimSpace(patronID); patronID != "" {
		return s.orders.ListByPatron(ctx, tenantID, patronID)
	}
	return s.orders.ListByTenant(ctx, tenantID)
}

func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID string) (*models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.Validation("orderId is required")
	}
	return s.orders.Get(ctx, tenantID, orderID)
}
