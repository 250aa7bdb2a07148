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

// DynamoPaymentRepository implements PaymentRepository on DynamoDB, keyed by
// order_id plus payment_type. Refunding a debit overwrites the Debit record
// in place.
type DynamoPaymentRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
}

// NewDynamoPaymentRepository creates a new DynamoPaymentRepository
func NewDynamoPaymentRepository(client *dynamodb.Client, tableName, indexName string) *DynamoPaymentRepository {
	return &DynamoPaymentRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
	}
}

// dynamoPaymentTransaction represents a payment transaction record
type dynamoPaymentTransaction struct {
	OrderID     string            `dynamodbav:"order_id"`
	PaymentType string            `dynamodbav:"payment_type"`
	MerchantID  string            `dynamodbav:"merchant_id"`
	Amount      models.Money      `dynamodbav:"payment_amount"`
	Status      string            `dynamodbav:"status"`
	Timestamps  models.Timestamps `dynamodbav:"timestamps"`
}

// Save upserts the whole transaction record under its composite key
func (r *DynamoPaymentRepository) Save(ctx context.Context, tx *domain.PaymentTransaction) error {
	item, err := attributevalue.MarshalMap(r.toRecord(tx))
	if err != nil {
		return errors.Wrap(err, "failed to marshal payment record")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.Wrap(err, "failed to put payment record")
	}

	return nil
}

// FindByOrderID queries by order ID and payment type, returning (nil, nil)
// when no record matches
func (r *DynamoPaymentRepository) FindByOrderID(ctx context.Context, orderID string, paymentType domain.PaymentType) (*domain.PaymentTransaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_id = :oid AND payment_type = :pt"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
			":pt":  &types.AttributeValueMemberS{Value: string(paymentType)},
		},
		Limit: aws.Int32(1),
	}
	if r.indexName != "" {
		input.IndexName = aws.String(r.indexName)
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query payment transactions")
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var record dynamoPaymentTransaction
	if err := attributevalue.UnmarshalMap(out.Items[0], &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal payment record")
	}

	return r.toDomain(&record), nil
}

func (r *DynamoPaymentRepository) toRecord(tx *domain.PaymentTransaction) *dynamoPaymentTransaction {
	return &dynamoPaymentTransaction{
		OrderID:     tx.OrderID,
		PaymentType: string(tx.Type),
		MerchantID:  tx.MerchantID,
		Amount:      tx.Amount,
		Status:      string(tx.Status),
		Timestamps:  tx.Timestamps,
	}
}

func (r *DynamoPaymentRepository) toDomain(record *dynamoPaymentTransaction) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		OrderID:    record.OrderID,
		Type:       domain.PaymentType(record.PaymentType),
		MerchantID: record.MerchantID,
		Amount:     record.Amount,
		Status:     domain.PaymentStatus(record.Status),
		Timestamps: record.Timestamps,
	}
}
