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

// DynamoOrderRepository implements OrderRepository on DynamoDB. Orders live in
// their own table keyed by order_id; Save is an unconditional PutItem, so a
// replayed write overwrites the whole record with identical content.
type DynamoOrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoOrderRepository creates a new DynamoOrderRepository
func NewDynamoOrderRepository(client *dynamodb.Client, tableName string) *DynamoOrderRepository {
	return &DynamoOrderRepository{
		client:    client,
		tableName: tableName,
	}
}

// dynamoOrder represents an order record in DynamoDB
type dynamoOrder struct {
	OrderID     string            `dynamodbav:"order_id"`
	CustomerID  string            `dynamodbav:"customer_id,omitempty"`
	ItemIDs     []string          `dynamodbav:"item_ids"`
	Total       models.Money      `dynamodbav:"total"`
	OrderStatus string            `dynamodbav:"order_status"`
	Timestamps  models.Timestamps `dynamodbav:"timestamps"`
}

// Save upserts the whole order record
func (r *DynamoOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	item, err := attributevalue.MarshalMap(r.toRecord(order))
	if err != nil {
		return errors.Wrap(err, "failed to marshal order record")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.Wrap(err, "failed to put order record")
	}

	return nil
}

// FindByID returns the stored order or (nil, nil) when no record exists
func (r *DynamoOrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order record")
	}
	if out.Item == nil {
		return nil, nil
	}

	var record dynamoOrder
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order record")
	}

	return r.toDomain(&record), nil
}

func (r *DynamoOrderRepository) toRecord(order *domain.Order) *dynamoOrder {
	return &dynamoOrder{
		OrderID:     order.OrderID,
		CustomerID:  order.CustomerID,
		ItemIDs:     order.ItemIDs,
		Total:       order.Total,
		OrderStatus: string(order.Status),
		Timestamps:  order.Timestamps,
	}
}

func (r *DynamoOrderRepository) toDomain(record *dynamoOrder) *domain.Order {
	return &domain.Order{
		OrderID:    record.OrderID,
		CustomerID: record.CustomerID,
		ItemIDs:    record.ItemIDs,
		Total:      record.Total,
		Status:     domain.OrderStatus(record.OrderStatus),
		Timestamps: record.Timestamps,
	}
}
