package models

// Category agrupa itens do cardápio. Order define a posição na listagem.
type Category struct {
	PK string `dynamodbav:"pk" json:"-"`
	SK string `dynamodbav:"sk" json:"-"`

	ID          string `dynamodbav:"categoryId" json:"categoryId"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	ImageURL    string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Order       int    `dynamodbav:"order" json:"order"`
	IsActive    bool   `dynamodbav:"isActive" json:"isActive"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`

	// Items só é preenchido na listagem pública do cardápio.
	Items []MenuItem `dynamodbav:"-" json:"items,omitempty"`
}

// MenuItem pertence a exatamente uma categoria. Price é inteiro em ienes.
type MenuItem struct {
	PK string `dynamodbav:"pk" json:"-"`
	SK string `dynamodbav:"sk" json:"-"`

	ID              string   `dynamodbav:"menuId" json:"menuId"`
	Name            string   `dynamodbav:"name" json:"name"`
	Price           int64    `dynamodbav:"price" json:"price"`
	CategoryID      string   `dynamodbav:"categoryId" json:"categoryId"`
	Description     string   `dynamodbav:"description" json:"description"`
	Recipe          string   `dynamodbav:"recipe" json:"recipe"`
	ImageURL        string   `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Thumbnail       string   `dynamodbav:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	IsActive        bool     `dynamodbav:"isActive" json:"isActive"`
	AvailableBlends []string `dynamodbav:"availableBlends" json:"availableBlends"`
	CreatedAt       string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt       string   `dynamodbav:"updatedAt" json:"updatedAt"`
}

// OffersBlend indica se o item lista blendID entre as variações disponíveis.
func (m MenuItem) OffersBlend(blendID string) bool {
	for _, id := range m.AvailableBlends {
		if id == blendID {
			return true
		}
	}
	return false
}

// Blend é uma variação opcional (sabor, blend de whisky) oferecida por itens.
type Blend struct {
	PK string `dynamodbav:"pk" json:"-"`
	SK string `dynamodbav:"sk" json:"-"`

	ID          string `dynamodbav:"blendId" json:"blendId"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	Order       int    `dynamodbav:"order" json:"order"`
	IsActive    bool   `dynamodbav:"isActive" json:"isActive"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}
