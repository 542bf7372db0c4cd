package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/raywall/bar-order-service/models"
)

// Line é uma linha do pedido na mensagem.
type Line struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	Remarks   string `json:"remarks,omitempty"`
	BlendName string `json:"blendName,omitempty"`
	Recipe    string `json:"recipe,omitempty"`
}

// OrderMessage descreve um pedido recém-criado.
type OrderMessage struct {
	TenantID   string `json:"tenantId"`
	OrderID    string `json:"orderId"`
	PatronID   string `json:"patronId"`
	PatronName string `json:"patronName"`
	Lines      []Line `json:"items"`
	Total      int64  `json:"total"`
	CreatedAt  string `json:"createdAt"`
}

// FromOrder monta a mensagem a partir do pedido persistido.
func FromOrder(tenantID string, order *models.Order) OrderMessage {
	lines := make([]Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			Remarks:   item.Remarks,
			BlendName: item.BlendName,
			Recipe:    item.Recipe,
		})
	}
	return OrderMessage{
		TenantID:   tenantID,
		OrderID:    order.ID,
		PatronID:   order.PatronID,
		PatronName: order.PatronName,
		Lines:      lines,
		Total:      order.Total,
		CreatedAt:  order.CreatedAt,
	}
}

// Text é a forma em texto simples usada no webhook de chat.
func (m OrderMessage) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order for %s\n", m.PatronName)
	for _, l := range m.Lines {
		fmt.Fprintf(&b, "- %s x%d ¥%d", l.Name, l.Quantity, l.Subtotal)
		if l.BlendName != "" {
			fmt.Fprintf(&b, " (%s)", l.BlendName)
		}
		b.WriteString("\n")
		if l.Remarks != "" {
			fmt.Fprintf(&b, "  note: %s\n", l.Remarks)
		}
		if l.Recipe != "" {
			fmt.Fprintf(&b, "  recipe: %s\n", l.Recipe)
		}
	}
	fmt.Fprintf(&b, "Total: ¥%d", m.Total)
	return b.String()
}

// Notifier entrega uma mensagem de pedido.
type Notifier interface {
	Notify(ctx context.Context, msg OrderMessage) error
}

// NotifierFunc adapta uma função a Notifier.
type NotifierFunc func(ctx context.Context, msg OrderMessage) error

func (f NotifierFunc) Notify(ctx context.Context, msg OrderMessage) error { return f(ctx, msg) }

// Nop descarta a mensagem.
type Nop struct{}

func (Nop) Notify(context.Context, OrderMessage) error { return nil }
