package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/pkg/errors"
)

// DynamoInventoryRepository implements InventoryRepository on DynamoDB. The
// composite identity is order_id plus transaction_type, so releasing a
// reservation overwrites the Reserve record in place.
type DynamoInventoryRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
}

// NewDynamoInventoryRepository creates a new DynamoInventoryRepository.
// indexName may be empty when order_id/transaction_type is the table's own
// key schema.
func NewDynamoInventoryRepository(client *dynamodb.Client, tableName, indexName string) *DynamoInventoryRepository {
	return &DynamoInventoryRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
	}
}

// dynamoInventoryTransaction represents an inventory transaction record
type dynamoInventoryTransaction struct {
	OrderID         string            `dynamodbav:"order_id"`
	TransactionType string            `dynamodbav:"transaction_type"`
	OrderItems      []string          `dynamodbav:"order_items"`
	Status          string            `dynamodbav:"status"`
	Timestamps      models.Timestamps `dynamodbav:"timestamps"`
}

// Save upserts the whole transaction record under its composite key
func (r *DynamoInventoryRepository) Save(ctx context.Context, tx *domain.InventoryTransaction) error {
	item, err := attributevalue.MarshalMap(r.toRecord(tx))
	if err != nil {
		return errors.Wrap(err, "failed to marshal inventory record")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.Wrap(err, "failed to put inventory record")
	}

	return nil
}

// FindByOrderID queries by order ID and transaction type, returning (nil, nil)
// when no record matches
func (r *DynamoInventoryRepository) FindByOrderID(ctx context.Context, orderID string, txType domain.TransactionType) (*domain.InventoryTransaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_id = :oid AND transaction_type = :tt"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
			":tt":  &types.AttributeValueMemberS{Value: string(txType)},
		},
		Limit: aws.Int32(1),
	}
	if r.indexName != "" {
		input.IndexName = aws.String(r.indexName)
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query inventory transactions")
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var record dynamoInventoryTransaction
	if err := attributevalue.UnmarshalMap(out.Items[0], &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal inventory record")
	}

	return r.toDomain(&record), nil
}

func (r *DynamoInventoryRepository) toRecord(tx *domain.InventoryTransaction) *dynamoInventoryTransaction {
	return &dynamoInventoryTransaction{
		OrderID:         tx.OrderID,
		TransactionType: string(tx.Type),
		OrderItems:      tx.OrderItems,
		Status:          string(tx.Status),
		Timestamps:      tx.Timestamps,
	}
}

func (r *DynamoInventoryRepository) toDomain(record *dynamoInventoryTransaction) *domain.InventoryTransaction {
	return &domain.InventoryTransaction{
		OrderID:    record.OrderID,
		Type:       domain.TransactionType(record.TransactionType),
		OrderItems: record.OrderItems,
		Status:     domain.InventoryStatus(record.Status),
		Timestamps: record.Timestamps,
	}
}
