package models

import "math"

// OrderStatus é o estado do pedido: pending → completed | cancelled.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// IsTerminal indica se o estado não admite transição.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Valid indica se s é um dos estados conhecidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderLine é uma linha desnormalizada: nome, preço e receita são copiados do
// item do cardápio no momento da criação e não acompanham edições posteriores.
type OrderLine struct {
	MenuID    string `dynamodbav:"menuId" json:"menuId"`
	Name      string `dynamodbav:"name" json:"name"`
	Price     int64  `dynamodbav:"price" json:"price"`
	Quantity  int    `dynamodbav:"quantity" json:"quantity"`
	Subtotal  int64  `dynamodbav:"subtotal" json:"subtotal"`
	Remarks   string `dynamodbav:"remarks" json:"remarks"`
	Recipe    string `dynamodbav:"recipe,omitempty" json:"recipe,omitempty"`
	BlendID   string `dynamodbav:"blendId,omitempty" json:"blendId,omitempty"`
	BlendName string `dynamodbav:"blendName,omitempty" json:"blendName,omitempty"`
}

// Order é imutável após a criação, exceto pelo Status.
type Order struct {
	PK     string `dynamodbav:"pk" json:"-"`
	SK     string `dynamodbav:"sk" json:"-"`
	GSI2PK string `dynamodbav:"gsi2pk" json:"-"`
	GSI2SK string `dynamodbav:"gsi2sk" json:"-"`

	ID         string      `dynamodbav:"orderId" json:"orderId"`
	PatronID   string      `dynamodbav:"patronId" json:"patronId"`
	PatronName string      `dynamodbav:"patronName" json:"patronName"`
	Items      []OrderLine `dynamodbav:"items" json:"items"`
	Total      int64       `dynamodbav:"total" json:"total"`
	Status     OrderStatus `dynamodbav:"status" json:"status"`
	CreatedAt  string      `dynamodbav:"createdAt" json:"createdAt"`
}

// LineSubtotal devolve price × quantity; ok é falso se o produto não cabe
// em int64.
func LineSubtotal(price int64, quantity int) (subtotal int64, ok bool) {
	if price < 0 || quantity < 0 {
		return 0, false
	}
	if quantity > 0 && price > math.MaxInt64/int64(quantity) {
		return 0, false
	}
	return price * int64(quantity), true
}

// SumSubtotals devolve a soma dos subtotais das linhas; ok é falso em
// overflow.
func SumSubtotals(lines []OrderLine) (total int64, ok bool) {
	for _, l := range lines {
		if l.Subtotal > math.MaxInt64-total {
			return 0, false
		}
		total += l.Subtotal
	}
	return total, true
}
