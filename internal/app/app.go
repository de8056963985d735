package app

import (
	"context"
	"fmt"

	"github.com/dealmarket/bff/internal/config"
	"github.com/dealmarket/bff/internal/db"
	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/service"
	"github.com/dealmarket/bff/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	TokenVerifier        *identity.TokenVerifier
	ImageReconciler      *service.ImageReconciler
	AuthService          *service.AuthService
	DealService          *service.DealService
	CategoryService      *service.CategoryService
	AdvertisementService *service.AdvertisementService
	UserService          *service.UserService
	AddressService       *service.AddressService
	CommentService       *service.CommentService
	OrderService         *service.OrderService
	PaymentService       *service.PaymentService
}

// openDatabase is replaced in tests to observe the handle New opens.
var openDatabase = db.Init

// New wires the application. On error nothing it opened is left open.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	// Identity provider
	verifier, err := identity.NewTokenVerifier(cfg.IdentityPublicKey, cfg.IdentityJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	// Initialize database
	database, err := openDatabase(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err != nil {
			_ = db.Close(database)
		}
	}()

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	dealRepository := repository.NewDealRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	advertisementRepository := repository.NewAdvertisementRepository(database)
	userRepository := repository.NewUserRepository(database)
	addressRepository := repository.NewAddressRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	orderRepository := repository.NewOrderRepository(database)
	paymentRepository := repository.NewPaymentRepository(database)

	imageRepositories := make(map[model.ImageNamespace]repository.ImageRepository, len(model.Namespaces))
	for _, ns := range model.Namespaces {
		table, _ := repository.TableFor(ns)
		imageRepositories[ns] = repository.NewImageRepository(database, table)
	}

	// Storage
	objectStorage, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	keycloak := identity.NewKeycloakClient(identity.KeycloakConfig{
		BaseURL:      cfg.IdentityURL,
		Realm:        cfg.IdentityRealm,
		ClientID:     cfg.IdentityClientID,
		ClientSecret: cfg.IdentityClientSecret,
		Timeout:      cfg.IdentityTimeout,
	})

	// Services
	issuer := service.NewImageIssuer(service.NewClockStamper(), objectStorage, cfg.S3PresignUploadTTL)
	reconciler := service.NewImageReconciler(imageRepositories)

	dealService := service.NewDealService(dealRepository, issuer)
	categoryService := service.NewCategoryService(categoryRepository)
	advertisementService := service.NewAdvertisementService(advertisementRepository, issuer)
	userService := service.NewUserService(
		userRepository,
		imageRepositories[model.NamespaceUsers],
		issuer,
		objectStorage,
		keycloak,
		cfg.S3PresignDownloadTTL,
	)
	addressService := service.NewAddressService(addressRepository, userRepository)
	commentService := service.NewCommentService(commentRepository, dealRepository)
	orderService := service.NewOrderService(orderRepository, dealRepository)
	paymentService := service.NewPaymentService(paymentRepository, orderRepository)
	authService := service.NewAuthService(keycloak)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		TokenVerifier:        verifier,
		ImageReconciler:      reconciler,
		AuthService:          authService,
		DealService:          dealService,
		CategoryService:      categoryService,
		AdvertisementService: advertisementService,
		UserService:          userService,
		AddressService:       addressService,
		CommentService:       commentService,
		OrderService:         orderService,
		PaymentService:       paymentService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
