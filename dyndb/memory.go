package dyndb

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryTable é uma Table em memória com a mesma semântica de chave e GSI do
// DynamoDB: itens sem os atributos de chave de um índice não aparecem nele,
// begins_with e igualdade na ordenação, ordem por chave de ordenação.
//
// Usada pelos testes e pelo runtime local.
type MemoryTable struct {
	mu    sync.RWMutex
	cfg   TableConfig
	items map[Key]Item
}

// NewMemoryTable cria uma tabela vazia. Os índices consultáveis vêm de cfg.Indexes.
func NewMemoryTable(cfg TableConfig) *MemoryTable {
	return &MemoryTable{
		cfg:   cfg.withDefaults(),
		items: make(map[Key]Item),
	}
}

var _ Table = (*MemoryTable)(nil)

func (m *MemoryTable) keyOf(item Item) (Key, error) {
	pk := StringAttr(item, m.cfg.HashKey)
	sk := StringAttr(item, m.cfg.SortKey)
	if pk == "" || sk == "" {
		return Key{}, fmt.Errorf("dyndb: item missing key attributes %s/%s", m.cfg.HashKey, m.cfg.SortKey)
	}
	return Key{PK: pk, SK: sk}, nil
}

func (m *MemoryTable) Get(_ context.Context, key Key) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneItem(item), nil
}

func (m *MemoryTable) Put(_ context.Context, item Item) error {
	key, err := m.keyOf(item)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = cloneItem(item)
	return nil
}

func (m *MemoryTable) Update(_ context.Context, key Key, set map[string]any, opts ...UpdateOption) (Item, error) {
	if len(set) == 0 {
		return nil, fmt.Errorf("dyndb: update requires at least one field")
	}
	o := collectUpdateOptions(opts)

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[key]
	for _, name := range o.required {
		if !exists {
			return nil, ErrConditionFailed
		}
		if _, ok := current[name]; !ok {
			return nil, ErrConditionFailed
		}
	}
	for name, want := range o.equals {
		wantAV, err := attributevalue.Marshal(want)
		if err != nil {
			return nil, fmt.Errorf("dyndb: marshal failed: %w", err)
		}
		if !exists || compareAttr(current[name], wantAV) != 0 {
			return nil, ErrConditionFailed
		}
	}

	next := cloneItem(current)
	if next == nil {
		next = Item{
			m.cfg.HashKey: &types.AttributeValueMemberS{Value: key.PK},
			m.cfg.SortKey: &types.AttributeValueMemberS{Value: key.SK},
		}
	}
	for name, value := range set {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("dyndb: marshal failed: %w", err)
		}
		next[name] = av
	}

	m.items[key] = next
	return cloneItem(next), nil
}

func (m *MemoryTable) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryTable) Query(_ context.Context, spec QuerySpec) ([]Item, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	// atributo que ordena o resultado: SK da tabela ou do índice
	orderBy := m.cfg.SortKey
	if spec.IndexName != "" {
		idx, ok := m.cfg.Index(spec.IndexName)
		if !ok {
			return nil, fmt.Errorf("dyndb: query failed: unknown index %q", spec.IndexName)
		}
		orderBy = idx.SortKey
	}

	m.mu.RLock()
	var result []Item
	for _, item := range m.items {
		if StringAttr(item, spec.PartitionName) != spec.PartitionValue {
			continue
		}
		if orderBy != "" {
			if _, ok := item[orderBy]; !ok {
				continue
			}
		}
		if !matchSort(item, spec) {
			continue
		}
		result = append(result, cloneItem(item))
	}
	m.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		c := compareAttr(result[i][orderBy], result[j][orderBy])
		if c == 0 {
			// desempate estável pela chave primária
			c = strings.Compare(StringAttr(result[i], m.cfg.SortKey), StringAttr(result[j], m.cfg.SortKey))
		}
		if spec.ScanForward {
			return c < 0
		}
		return c > 0
	})
	return result, nil
}

func (m *MemoryTable) BatchDelete(ctx context.Context, keys []Key) (int, error) {
	deleted := 0
	for start := 0; start < len(keys); start += MaxBatchWrite {
		end := start + MaxBatchWrite
		if end > len(keys) {
			end = len(keys)
		}
		if err := ctx.Err(); err != nil {
			return deleted, fmt.Errorf("dyndb: batch delete failed: %w", err)
		}
		m.mu.Lock()
		for _, k := range keys[start:end] {
			delete(m.items, k)
		}
		m.mu.Unlock()
		deleted += end - start
	}
	return deleted, nil
}

// Len devolve o número de itens armazenados.
func (m *MemoryTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func matchSort(item Item, spec QuerySpec) bool {
	if spec.SortOp == SortNone {
		return true
	}
	value := StringAttr(item, spec.SortName)
	if _, ok := item[spec.SortName]; !ok {
		return false
	}
	switch spec.SortOp {
	case SortEqual:
		return value == spec.SortValue
	case SortBeginsWith:
		return strings.HasPrefix(value, spec.SortValue)
	}
	return false
}

// compareAttr compara S e N como o DynamoDB ordena chaves; outros tipos empatam.
func compareAttr(a, b types.AttributeValue) int {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		if bv, ok := b.(*types.AttributeValueMemberS); ok {
			return strings.Compare(av.Value, bv.Value)
		}
	case *types.AttributeValueMemberN:
		if bv, ok := b.(*types.AttributeValueMemberN); ok {
			x, okA := new(big.Float).SetString(av.Value)
			y, okB := new(big.Float).SetString(bv.Value)
			if okA && okB {
				return x.Cmp(y)
			}
			return strings.Compare(av.Value, bv.Value)
		}
	case *types.AttributeValueMemberBOOL:
		if bv, ok := b.(*types.AttributeValueMemberBOOL); ok && av.Value == bv.Value {
			return 0
		}
		return 1
	}
	if a == nil && b == nil {
		return 0
	}
	return 1
}

func cloneItem(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
