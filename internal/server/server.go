package server

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/eskrenkovic/product-draft-editor/internal/config"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/attribute"
	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/auth"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/designer"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/commands"
	editordomain "github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/persistence"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/projection"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for an application.
type HTTPServer struct {
	server          *http.Server
	db              *sql.DB
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	sqlxDB := sqlx.NewDb(db, "postgres")

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// event sourcing

	registry := eventsourcing.NewEventRegistry()
	editordomain.RegisterEvents(registry)

	eventStore := eventsourcing.NewEventStore(db, registry)
	drafts := persistence.NewEventSourcedDraftRepository(eventStore, eventsourcing.MediatorPublisher{})

	mediator.RegisterNotificationHandler[eventsourcing.Envelope](
		eventsourcing.NewProjectionHandler(config.Logger, projection.Projectors(db)...),
	)

	// handler registration

	products := product.NewProductRepository(sqlxDB)
	attributes := attribute.NewRepository(sqlxDB)
	draftQuery := persistence.NewDraftQuery(sqlxDB)

	err = mediator.RegisterRequestHandler[commands.CreateProductDraftCommand, core.Unit](
		commands.NewCreateProductDraftCommandHandler(products, draftQuery, drafts),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[commands.PersistProductDraftCommand, core.Unit](
		commands.NewPersistProductDraftCommandHandler(products, drafts),
	)
	if err != nil {
		return nil, err
	}

	err = mediator.RegisterRequestHandler[commands.ChangeProductAttributeValueCommand, core.Unit](
		commands.NewChangeProductAttributeValueCommandHandler(attributes, drafts),
	)
	if err != nil {
		return nil, err
	}

	bus := core.NewMediatorBus()
	core.Route[commands.CreateProductDraftCommand](bus)
	core.Route[commands.PersistProductDraftCommand](bus)
	core.Route[commands.ChangeProductAttributeValueCommand](bus)

	// http

	draftHandler := editor.NewProductDraftHTTPHandler(
		bus,
		draftQuery,
		persistence.NewDraftProvider(draftQuery, drafts),
		products,
		attributes,
		attributedomain.NewValidationProvider(),
		designer.NewTemplateRepository(sqlxDB),
		designer.NewViewTemplateBuilder(attributes),
		core.NewFormValidator(),
	)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		core.CorrelationIDHTTPMiddleware,
		core.LoggingHTTPMiddleware(config.Logger),
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.AuthenticationMiddleware(config.AuthTokenSecret))
		r.Route("/{language}", draftHandler.Routes)
	})

	server := http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	return &HTTPServer{
		server:          &server,
		db:              db,
		logger:          config.Logger,
		shutdownTimeout: config.ShutdownTimeout,
	}, nil
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting http server", zap.String("address", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop waits for in-flight requests up to the shutdown timeout.
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	shutdownErr := s.server.Shutdown(ctx)
	return errors.Join(shutdownErr, s.db.Close())
}
