package dyndb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// Encode converte uma struct com tags `dynamodbav` em Item.
func Encode(v any) (Item, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("dyndb: marshal failed: %w", err)
	}
	return item, nil
}

// Decode converte um Item na struct T.
func Decode[T any](item Item) (*T, error) {
	var t T
	if err := attributevalue.UnmarshalMap(item, &t); err != nil {
		return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
	}
	return &t, nil
}

// DecodeAll converte uma lista de Items preservando a ordem.
func DecodeAll[T any](items []Item) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
		}
		result = append(result, t)
	}
	return result, nil
}

// StringAttr lê um atributo string, devolvendo "" quando ausente ou de outro tipo.
func StringAttr(item Item, name string) string {
	var s string
	if av, ok := item[name]; ok {
		_ = attributevalue.Unmarshal(av, &s)
	}
	return s
}
