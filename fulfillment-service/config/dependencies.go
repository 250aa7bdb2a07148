package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderflow/fulfillment-system/fulfillment-service/application"
	"github.com/orderflow/fulfillment-system/fulfillment-service/handlers"
	"github.com/orderflow/fulfillment-system/fulfillment-service/infrastructure"
	"github.com/orderflow/fulfillment-system/shared/fault"
	sharedinfra "github.com/orderflow/fulfillment-system/shared/infrastructure"
	"github.com/orderflow/fulfillment-system/shared/telemetry"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database (saga audit log)
	DB *sqlx.DB

	// Repositories
	OrderRepository     *infrastructure.DynamoOrderRepository
	InventoryRepository *infrastructure.DynamoInventoryRepository
	PaymentRepository   *infrastructure.DynamoPaymentRepository

	// Use Cases
	CreateOrder       *application.CreateOrder
	ReserveInventory  *application.ReserveInventory
	ReleaseInventory  *application.ReleaseInventory
	DebitPayment      *application.DebitPayment
	CreditPayment     *application.CreditPayment
	UpdateOrderStatus *application.UpdateOrderStatus
	FulfillOrder      *application.FulfillOrder
	GetOrder          *application.GetOrder

	// HTTP Handlers
	FulfillmentHandlers *handlers.FulfillmentHandlers

	// Event Handlers
	FulfillmentEventHandlers *handlers.FulfillmentEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
	EventStore      *sharedinfra.PostgresEventStore

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.FulfillmentServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			logger.Warn("failed to initialize telemetry, continuing without it", zap.Error(err))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)

	// Initialize AWS infrastructure
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, config.AWS.SNSTopicArn, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.OrderRepository = infrastructure.NewDynamoOrderRepository(dynamoClient, config.AWS.Tables.Orders)
	deps.InventoryRepository = infrastructure.NewDynamoInventoryRepository(
		dynamoClient, config.AWS.Tables.InventoryTransactions, config.AWS.Tables.TransactionIndex)
	deps.PaymentRepository = infrastructure.NewDynamoPaymentRepository(
		dynamoClient, config.AWS.Tables.PaymentTransactions, config.AWS.Tables.TransactionIndex)

	// Fault injection: disabled unless this deployment opts in
	faults := buildFaultInjector(config.FaultInjection)

	// Initialize use cases
	deps.CreateOrder = application.NewCreateOrder(deps.OrderRepository, eventPublisher, faults, logger)
	deps.ReserveInventory = application.NewReserveInventory(deps.InventoryRepository, eventPublisher, faults, logger)
	deps.ReleaseInventory = application.NewReleaseInventory(deps.InventoryRepository, eventPublisher, faults, logger)
	deps.DebitPayment = application.NewDebitPayment(deps.PaymentRepository, eventPublisher, faults, config.Payment.MerchantID, logger)
	deps.CreditPayment = application.NewCreditPayment(deps.PaymentRepository, eventPublisher, faults, logger)
	deps.UpdateOrderStatus = application.NewUpdateOrderStatus(deps.OrderRepository, eventPublisher, faults, logger)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.FulfillOrder = application.NewFulfillOrder(
		deps.CreateOrder,
		deps.ReserveInventory,
		deps.DebitPayment,
		deps.UpdateOrderStatus,
		deps.ReleaseInventory,
		deps.CreditPayment,
		eventPublisher,
		deps.EventStore,
		logger,
	)

	// Initialize handlers
	deps.FulfillmentHandlers = handlers.NewFulfillmentHandlers(
		deps.FulfillOrder,
		deps.GetOrder,
		deps.CreateOrder,
		deps.ReserveInventory,
		deps.ReleaseInventory,
		deps.DebitPayment,
		deps.CreditPayment,
		deps.UpdateOrderStatus,
	)
	deps.FulfillmentEventHandlers = handlers.NewFulfillmentEventHandlers(deps.FulfillOrder, logger)

	return deps, nil
}

func buildFaultInjector(cfg FaultInjection) fault.Injector {
	if !cfg.Enabled || len(cfg.Prefixes) == 0 {
		return fault.Disabled{}
	}
	return fault.NewPrefixInjector(cfg.Prefixes)
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
