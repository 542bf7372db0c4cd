package seed

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/bar-order-service/dyndb"
	"github.com/raywall/bar-order-service/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockS3 struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *MockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

func newRepo() *repository.MenuRepository {
	table := dyndb.NewMemoryTable(repository.Schema("bar-orders-test", repository.DefaultIndexes()))
	return repository.NewMenuRepository(table)
}

func TestOpen_LocalYAML(t *testing.T) {
	c, err := Open(context.Background(), "testdata/catalog.yaml", nil)
	require.NoError(t, err)

	assert.Len(t, c.Categories, 2)
	assert.Len(t, c.Blends, 2)
	require.Len(t, c.MenuItems, 3)
	assert.Equal(t, []string{"yamazaki", "hakushu"}, c.MenuItems[0].Blends)
	require.NotNil(t, c.MenuItems[2].IsActive)
	assert.False(t, *c.MenuItems[2].IsActive)
}

func TestOpen_S3JSON(t *testing.T) {
	client := &MockS3{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "menus", aws.ToString(params.Bucket))
			assert.Equal(t, "prod/catalog.json", aws.ToString(params.Key))
			return &s3.GetObjectOutput{
				Body: io.NopCloser(strings.NewReader(`{"categories":[{"name":"Beer"}],"menuItems":[{"name":"Lager","price":500,"category":"Beer"}]}`)),
			}, nil
		},
	}

	c, err := Open(context.Background(), "s3://menus/prod/catalog.json", client)
	require.NoError(t, err)
	assert.Equal(t, "Beer", c.Categories[0].Name)
	assert.Equal(t, int64(500), c.MenuItems[0].Price)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "s3://menus/catalog.yaml", nil)
	assert.Error(t, err)

	failing := &MockS3{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, errors.New("NoSuchKey")
		},
	}
	_, err = Open(context.Background(), "s3://menus/catalog.yaml", failing)
	assert.ErrorContains(t, err, "NoSuchKey")

	_, err = Parse([]byte("a,b"), "csv")
	assert.Error(t, err)
}

func TestLoad_ResolvesReferencesAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	c, err := Open(ctx, "testdata/catalog.yaml", nil)
	require.NoError(t, err)

	res, err := Load(ctx, repo, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 2, Blends: 2, MenuItems: 3}, res)

	items, err := repo.MenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	var highball = items[1]
	assert.Equal(t, "Highball", highball.Name)
	assert.Len(t, highball.AvailableBlends, 2)

	menu, err := repo.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Whisky", menu[0].Name)
	assert.Len(t, menu[0].Items, 1, "inactive items stay off the public menu")

	again, err := Load(ctx, repo, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 7}, again)
}

func TestLoad_UnknownReference(t *testing.T) {
	c := &Catalog{MenuItems: []MenuItemSpec{{Name: "Ghost", Price: 100, Category: "nowhere"}}}
	_, err := Load(context.Background(), newRepo(), c)
	assert.ErrorContains(t, err, "unknown category")

	c = &Catalog{
		Categories: []CategorySpec{{Name: "Beer"}},
		MenuItems:  []MenuItemSpec{{Name: "Lager", Price: 100, Category: "beer", Blends: []string{"x"}}},
	}
	_, err = Load(context.Background(), newRepo(), c)
	assert.ErrorContains(t, err, "unknown blend")
}
