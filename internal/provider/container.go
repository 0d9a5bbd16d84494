package provider

import (
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Pricing     service.CartPricing

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	ReviewRepo   repository.ReviewRepository
	WishlistRepo repository.WishlistRepository
	AddressRepo  repository.AddressRepository
	HistoryRepo  repository.HistoryRepository

	// Services
	ProfileService  *service.ProfileService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
	ReviewService   *service.ReviewService
	WishlistService *service.WishlistService
	AddressService  *service.AddressService
	HistoryService  *service.HistoryService
}

// NewContainer wires the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queue.NewClient(&cfg.Queue),
		Pricing:     service.NewCartPricingFromConfig(cfg.Cart),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.HistoryRepo = repository.NewHistoryRepository(db)
}

func (c *Container) initServices() {
	c.ProfileService = service.NewProfileService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ReviewRepo, c.Config.Catalog)
	c.CartService = service.NewCartService(c.CartRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.AddressRepo, c.Pricing, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.HistoryService = service.NewHistoryService(c.HistoryRepo, c.ProductRepo, c.QueueClient)
}

// NewCartSession builds the cart projection for one principal.
func (c *Container) NewCartSession(principal service.Principal) *service.CartSession {
	return service.NewCartSession(c.ProfileService, c.CartService, c.Pricing, principal)
}
