package cmd

import (
	"context"
	"log/slog"

	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/redis"
	"parceltrack/internal/adapters/out/s3blob"
	"parceltrack/internal/adapters/out/stripepay"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	blobs     ports.BlobStore
	payments  ports.PaymentGateway
	cache     *redis.TrackingCache
	publisher *kafka.Publisher

	policy services.ValidationPolicy
	authz  services.AuthorizationPolicy
	engine services.StatusTransitionEngine
}

// NewCompositionRoot builds the outbound adapters. Events are published only
// when Kafka brokers are configured.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	blobs, err := s3blob.NewStore(ctx, s3blob.Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Prefix:          cfg.S3.Prefix,
		PublicDomain:    cfg.S3.PublicDomain,
		Endpoint:        cfg.S3.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		gormDB:   gormDB,
		blobs:    blobs,
		payments: stripepay.NewGateway(cfg.Stripe.SecretKey),
		cache: redis.NewTrackingCache(redis.Config{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	}

	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		c.publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		publisher = c.publisher
	} else {
		logger.Warn("No Kafka brokers configured, domain events are dropped")
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	c.policy = services.NewValidationPolicy()
	c.authz = services.NewAuthorizationPolicy()
	c.engine = services.NewStatusTransitionEngine(c.authz)
	return c, nil
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() {
	if err := c.cache.Close(); err != nil {
		c.logger.Warn("Failed to close tracking cache", "error", err)
	}
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Warn("Failed to close event publisher", "error", err)
		}
	}
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) commentUoWFactory() commands.CommentUoWFactory {
	return FuncCommentUoWFactory(func() commands.CommentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) addressBookUoWFactory() commands.AddressBookUoWFactory {
	return FuncAddressBookUoWFactory(func() commands.AddressBookUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentReader() queries.ShipmentReader {
	return uowShipmentReader{factory: c.uowFactory}
}

func (c *CompositionRoot) CreateAttachmentCoordinator() *commands.AttachmentCoordinator {
	return commands.NewAttachmentCoordinator(
		c.policy,
		services.NewPricingCalculator(c.policy),
		services.NewTrackingCodeGenerator(),
		c.blobs,
		c.payments,
		c.shipmentUoWFactory(),
		c.logger,
		commands.WithUploadTimeout(c.cfg.Timeouts.Upload),
		commands.WithPaymentTimeout(c.cfg.Timeouts.Payment),
	)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler(
	coordinator *commands.AttachmentCoordinator,
) commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(coordinator, c.addressBookUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateBulkImportShipmentsCommandHandler(
	coordinator *commands.AttachmentCoordinator,
) commands.BulkImportShipmentsCommandHandler {
	return commands.NewBulkImportShipmentsCommandHandler(
		coordinator, services.NewPricingCalculator(c.policy), c.cfg.Bulk.Workers, c.logger)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	return commands.NewUpdateShipmentStatusCommandHandler(c.shipmentUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateEditShipmentDescriptionCommandHandler() commands.EditShipmentDescriptionCommandHandler {
	return commands.NewEditShipmentDescriptionCommandHandler(c.shipmentUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory(), c.authz, c.blobs, c.cache, c.logger)
}

func (c *CompositionRoot) CreateAttachDocumentsCommandHandler(
	coordinator *commands.AttachmentCoordinator,
) commands.AttachDocumentsCommandHandler {
	return commands.NewAttachDocumentsCommandHandler(coordinator, c.shipmentUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateAddCommentCommandHandler() commands.AddCommentCommandHandler {
	return commands.NewAddCommentCommandHandler(c.commentUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	return commands.NewSubmitFeedbackCommandHandler(c.shipmentUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateSaveAddressBookEntryCommandHandler() commands.SaveAddressBookEntryCommandHandler {
	return commands.NewSaveAddressBookEntryCommandHandler(c.addressBookUoWFactory(), c.policy, c.authz)
}

func (c *CompositionRoot) CreateDeleteAddressBookEntryCommandHandler() commands.DeleteAddressBookEntryCommandHandler {
	return commands.NewDeleteAddressBookEntryCommandHandler(c.addressBookUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateChangeUserRoleCommandHandler() commands.ChangeUserRoleCommandHandler {
	return commands.NewChangeUserRoleCommandHandler(c.userUoWFactory(), c.authz)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateSweepOrphanDocumentsCommandHandler() commands.SweepOrphanDocumentsCommandHandler {
	return commands.NewSweepOrphanDocumentsCommandHandler(c.shipmentUoWFactory(), c.blobs, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.shipmentReader(), c.engine, c.authz)
}

func (c *CompositionRoot) CreateGetShipmentByTrackingNumberQueryHandler() queries.GetShipmentByTrackingNumberQueryHandler {
	return queries.NewGetShipmentByTrackingNumberQueryHandler(
		c.shipmentReader(), c.cache, c.engine, c.cfg.Redis.TrackingTTL, c.logger)
}

func (c *CompositionRoot) CreateListParticipantShipmentsQueryHandler() queries.ListParticipantShipmentsQueryHandler {
	return queries.NewListParticipantShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCommentsQueryHandler() queries.ListCommentsQueryHandler {
	return queries.NewListCommentsQueryHandler(c.gormDB, c.shipmentReader(), c.authz)
}

func (c *CompositionRoot) CreateListAddressBookQueryHandler() queries.ListAddressBookQueryHandler {
	return queries.NewListAddressBookQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB, c.authz)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	coordinator := c.CreateAttachmentCoordinator()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateShipment:         c.CreateCreateShipmentCommandHandler(coordinator),
		BulkImport:             c.CreateBulkImportShipmentsCommandHandler(coordinator),
		UpdateStatus:           c.CreateUpdateShipmentStatusCommandHandler(),
		EditDescription:        c.CreateEditShipmentDescriptionCommandHandler(),
		CancelShipment:         c.CreateCancelShipmentCommandHandler(),
		AttachDocuments:        c.CreateAttachDocumentsCommandHandler(coordinator),
		AddComment:             c.CreateAddCommentCommandHandler(),
		SubmitFeedback:         c.CreateSubmitFeedbackCommandHandler(),
		SaveAddressBookEntry:   c.CreateSaveAddressBookEntryCommandHandler(),
		DeleteAddressBookEntry: c.CreateDeleteAddressBookEntryCommandHandler(),
		ChangeUserRole:         c.CreateChangeUserRoleCommandHandler(),

		GetShipment:              c.CreateGetShipmentQueryHandler(),
		GetShipmentByTracking:    c.CreateGetShipmentByTrackingNumberQueryHandler(),
		ListParticipantShipments: c.CreateListParticipantShipmentsQueryHandler(),
		ListComments:             c.CreateListCommentsQueryHandler(),
		ListAddressBook:          c.CreateListAddressBookQueryHandler(),
		ListUsers:                c.CreateListUsersQueryHandler(),
	}, c.engine, c.logger)
}

func (c *CompositionRoot) CreateAuthenticator() *httpadapter.Authenticator {
	return httpadapter.NewAuthenticator([]byte(c.cfg.JWT.Secret), c.CreateRegisterUserCommandHandler())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOrphanDocumentSweepJob(
			c.CreateSweepOrphanDocumentsCommandHandler(),
			c.cfg.OrphanSweep.Schedule,
			c.cfg.OrphanSweep.Grace,
			c.logger,
		),
	)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncCommentUoWFactory func() commands.CommentUoW

func (f FuncCommentUoWFactory) Create() commands.CommentUoW {
	return f()
}

type FuncAddressBookUoWFactory func() commands.AddressBookUoW

func (f FuncAddressBookUoWFactory) Create() commands.AddressBookUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

// uowShipmentReader reads through a fresh unit of work per call, outside any
// transaction.
type uowShipmentReader struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (r uowShipmentReader) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.factory.Create().ShipmentRepository().Get(ctx, id)
}

func (r uowShipmentReader) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	return r.factory.Create().ShipmentRepository().GetByTrackingNumber(ctx, trackingNumber)
}
