package dyndb_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/bar-order-service/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func TestGet_Success(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	expectedItem := dyndb.Item{
		"pk":   s("tenant:u1"),
		"sk":   s("PATRON:p1"),
		"name": s("Alice"),
	}

	mockClient.On("GetItem", mock.Anything, &dynamodb.GetItemInput{
		TableName:      aws.String("test-table"),
		Key:            dyndb.Item{"pk": s("tenant:u1"), "sk": s("PATRON:p1")},
		ConsistentRead: aws.Bool(true),
	}).Return(&dynamodb.GetItemOutput{Item: expectedItem}, nil)

	item, err := table.Get(context.Background(), dyndb.Key{PK: "tenant:u1", SK: "PATRON:p1"})

	require.NoError(t, err)
	assert.Equal(t, "Alice", dyndb.StringAttr(item, "name"))
	mockClient.AssertExpectations(t)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := table.Get(context.Background(), dyndb.Key{PK: "a", SK: "b"})
	assert.ErrorIs(t, err, dyndb.ErrNotFound)
}

func TestGet_ClientErrorIsWrapped(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)
	boom := errors.New("throttled")

	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := table.Get(context.Background(), dyndb.Key{PK: "a", SK: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, dyndb.ErrNotFound)
}

func TestPut_SendsWholeItem(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)
	item := dyndb.Item{"pk": s("tenant:u1"), "sk": s("ORDER:o1"), "status": s("pending")}

	mockClient.On("PutItem", mock.Anything, &dynamodb.PutItemInput{
		TableName: aws.String("test-table"),
		Item:      item,
	}).Return(&dynamodb.PutItemOutput{}, nil)

	require.NoError(t, table.Put(context.Background(), item))
	mockClient.AssertExpectations(t)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("returns all new attributes", func(t *testing.T) {
		mockClient := &MockDynamoClient{}
		table := createTestTable(mockClient)
		updated := dyndb.Item{"pk": s("tenant:u1"), "sk": s("PATRON:p1"), "name": s("Bob")}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.TableName == "test-table" &&
				in.ReturnValues == types.ReturnValueAllNew &&
				in.UpdateExpression != nil &&
				in.ConditionExpression != nil
		})).Return(&dynamodb.UpdateItemOutput{Attributes: updated}, nil)

		item, err := table.Update(context.Background(),
			dyndb.Key{PK: "tenant:u1", SK: "PATRON:p1"},
			map[string]any{"name": "Bob", "gsi1sk": "Bob"},
			dyndb.RequireAttributes("pk"),
		)

		require.NoError(t, err)
		assert.Equal(t, "Bob", dyndb.StringAttr(item, "name"))
		mockClient.AssertExpectations(t)
	})

	t.Run("conditional check failure maps to ErrConditionFailed", func(t *testing.T) {
		mockClient := &MockDynamoClient{}
		table := createTestTable(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("nope")})

		_, err := table.Update(context.Background(), dyndb.Key{PK: "a", SK: "b"},
			map[string]any{"name": "x"}, dyndb.RequireAttributes("pk"))
		assert.ErrorIs(t, err, dyndb.ErrConditionFailed)
	})

	t.Run("empty field set is rejected before calling the client", func(t *testing.T) {
		mockClient := &MockDynamoClient{}
		table := createTestTable(mockClient)

		_, err := table.Update(context.Background(), dyndb.Key{PK: "a", SK: "b"}, nil)
		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("DeleteItem", mock.Anything, &dynamodb.DeleteItemInput{
		TableName: aws.String("test-table"),
		Key:       dyndb.Item{"pk": s("tenant:PUBLIC"), "sk": s("MENU:m1")},
	}).Return(&dynamodb.DeleteItemOutput{}, nil)

	require.NoError(t, table.Delete(context.Background(), dyndb.Key{PK: "tenant:PUBLIC", SK: "MENU:m1"}))
	mockClient.AssertExpectations(t)
}

func makeKeys(n int) []dyndb.Key {
	keys := make([]dyndb.Key, n)
	for i := range keys {
		keys[i] = dyndb.Key{PK: "tenant:u1", SK: fmt.Sprintf("ORDER:%03d", i)}
	}
	return keys
}

func TestBatchDelete_ChunksAt25(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	var sizes []int
	mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*dynamodb.BatchWriteItemInput)
			sizes = append(sizes, len(in.RequestItems["test-table"]))
		}).
		Return(&dynamodb.BatchWriteItemOutput{}, nil)

	deleted, err := table.BatchDelete(context.Background(), makeKeys(60))

	require.NoError(t, err)
	assert.Equal(t, 60, deleted)
	assert.Equal(t, []int{25, 25, 10}, sizes)
}

func TestBatchDelete_EmptyInputIsNoop(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	deleted, err := table.BatchDelete(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	mockClient.AssertNotCalled(t, "BatchWriteItem", mock.Anything, mock.Anything)
}

func TestBatchDelete_FailureMidSequenceIsPartial(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).
		Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()
	mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).
		Return(nil, errors.New("provisioned throughput exceeded")).Once()

	deleted, err := table.BatchDelete(context.Background(), makeKeys(60))

	require.Error(t, err)
	assert.Equal(t, 25, deleted)
	mockClient.AssertNumberOfCalls(t, "BatchWriteItem", 2)
}

func TestBatchDelete_ResubmitsUnprocessedItems(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	leftover := []types.WriteRequest{{
		DeleteRequest: &types.DeleteRequest{Key: dyndb.Item{"pk": s("tenant:u1"), "sk": s("ORDER:001")}},
	}}
	mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).
		Return(&dynamodb.BatchWriteItemOutput{
			UnprocessedItems: map[string][]types.WriteRequest{"test-table": leftover},
		}, nil).Once()
	mockClient.On("BatchWriteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchWriteItemInput) bool {
		return len(in.RequestItems["test-table"]) == 1
	})).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()

	deleted, err := table.BatchDelete(context.Background(), makeKeys(3))

	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	mockClient.AssertExpectations(t)
}

func TestQuery_FollowsPagesAndHonorsIndex(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	page1 := []dyndb.Item{{"pk": s("tenant:u1"), "sk": s("ORDER:2")}}
	page2 := []dyndb.Item{{"pk": s("tenant:u1"), "sk": s("ORDER:1")}}

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items:            page1,
		LastEvaluatedKey: page1[0],
	}, nil).Once()
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{Items: page2}, nil).Once()

	items, err := dyndb.From(table).
		Index("GSI2").
		KeyEqual("gsi2pk", "tenant:u1#PATRON#p1").
		ScanForward(false).
		Exec(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ORDER:2", dyndb.StringAttr(items[0], "sk"))
	assert.Equal(t, "ORDER:1", dyndb.StringAttr(items[1], "sk"))

	first := mockClient.Calls[0].Arguments.Get(1).(*dynamodb.QueryInput)
	assert.Equal(t, "GSI2", aws.ToString(first.IndexName))
	assert.False(t, aws.ToBool(first.ScanIndexForward))
	mockClient.AssertExpectations(t)
}

func TestQuery_RequiresPartition(t *testing.T) {
	t.Parallel()

	mockClient := &MockDynamoClient{}
	table := createTestTable(mockClient)

	_, err := table.Query(context.Background(), dyndb.QuerySpec{})
	assert.Error(t, err)
	mockClient.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}
