// dyndb/mock.go
package dyndb

import "context"

// MockTable é um mock da interface Table para testes.
//
// Cada campo de função (`GetFn`, `PutFn`, etc.) simula o comportamento da
// operação correspondente. Quando Fallback é informado, as operações sem
// função definida são delegadas a ele; assim um teste pode injetar falha em
// uma única operação mantendo as demais funcionais.
type MockTable struct {
	Fallback      Table
	GetFn         func(ctx context.Context, key Key) (Item, error)
	PutFn         func(ctx context.Context, item Item) error
	UpdateFn      func(ctx context.Context, key Key, set map[string]any, opts ...UpdateOption) (Item, error)
	DeleteFn      func(ctx context.Context, key Key) error
	QueryFn       func(ctx context.Context, spec QuerySpec) ([]Item, error)
	BatchDeleteFn func(ctx context.Context, keys []Key) (int, error)
}

var _ Table = (*MockTable)(nil)

func (m *MockTable) Get(ctx context.Context, key Key) (Item, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	if m.Fallback != nil {
		return m.Fallback.Get(ctx, key)
	}
	return nil, ErrNotFound
}

func (m *MockTable) Put(ctx context.Context, item Item) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, item)
	}
	if m.Fallback != nil {
		return m.Fallback.Put(ctx, item)
	}
	return nil
}

func (m *MockTable) Update(ctx context.Context, key Key, set map[string]any, opts ...UpdateOption) (Item, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, key, set, opts...)
	}
	if m.Fallback != nil {
		return m.Fallback.Update(ctx, key, set, opts...)
	}
	return nil, ErrConditionFailed
}

func (m *MockTable) Delete(ctx context.Context, key Key) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	if m.Fallback != nil {
		return m.Fallback.Delete(ctx, key)
	}
	return nil
}

func (m *MockTable) Query(ctx context.Context, spec QuerySpec) ([]Item, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, spec)
	}
	if m.Fallback != nil {
		return m.Fallback.Query(ctx, spec)
	}
	return nil, nil
}

func (m *MockTable) BatchDelete(ctx context.Context, keys []Key) (int, error) {
	if m.BatchDeleteFn != nil {
		return m.BatchDeleteFn(ctx, keys)
	}
	if m.Fallback != nil {
		return m.Fallback.BatchDelete(ctx, keys)
	}
	return len(keys), nil
}
