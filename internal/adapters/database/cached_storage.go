package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/providers"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/observability"
)

// CachedStorage decorates a Storage backend with read-through caching
// for provider and category reads. Mutations pass through to the inner
// store and invalidate affected keys asynchronously. Cache failures
// never surface to callers; the inner store always wins.
type CachedStorage struct {
	repositories.Storage
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedStorage wraps the given storage with the cache decorator.
func NewCachedStorage(inner repositories.Storage, cache providers.CacheProvider, metrics *observability.Metrics) repositories.Storage {
	return &CachedStorage{
		Storage: inner,
		cache:   cache,
		metrics: metrics,
	}
}

// Cache TTLs (in seconds)
const (
	providerTTL      = 300 // 5 minutes for single providers
	providersListTTL = 180 // 3 minutes for provider listings
	categoryTTL      = 600 // 10 minutes for reference data
	providerLinksTTL = 300
)

func providerCacheKey(id string) string {
	return fmt.Sprintf("provider:%s", id)
}

func providerByUserCacheKey(userID string) string {
	return fmt.Sprintf("provider:by-user:%s", userID)
}

func providersListCacheKey(filter repositories.ProviderFilter) string {
	approved := "any"
	if filter.IsApproved != nil {
		approved = fmt.Sprintf("%t", *filter.IsApproved)
	}
	return fmt.Sprintf("providers:list:%s:%s:%s", filter.CategoryID, filter.Location, approved)
}

func categoryCacheKey(id string) string {
	return fmt.Sprintf("category:%s", id)
}

func providerLinksCacheKey(providerID string) string {
	return fmt.Sprintf("provider:links:%s", providerID)
}

const categoriesListCacheKey = "categories:list"

// GetProvider retrieves a provider by ID with caching
func (c *CachedStorage) GetProvider(ctx context.Context, id string) (*entities.Provider, error) {
	key := providerCacheKey(id)
	if provider, ok := cacheRead[entities.Provider](ctx, c, key); ok {
		return provider, nil
	}

	provider, err := c.Storage.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(key, provider, providerTTL)
	return provider, nil
}

// GetProviderByUserID retrieves the provider linked to a user with caching
func (c *CachedStorage) GetProviderByUserID(ctx context.Context, userID string) (*entities.Provider, error) {
	key := providerByUserCacheKey(userID)
	if provider, ok := cacheRead[entities.Provider](ctx, c, key); ok {
		return provider, nil
	}

	provider, err := c.Storage.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(key, provider, providerTTL)
	return provider, nil
}

// ListProviders retrieves providers matching the filter with caching
func (c *CachedStorage) ListProviders(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	key := providersListCacheKey(filter)
	if list, ok := cacheRead[[]*entities.Provider](ctx, c, key); ok {
		return *list, nil
	}

	list, err := c.Storage.ListProviders(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(key, list, providersListTTL)
	return list, nil
}

// GetServiceCategory retrieves a category by ID with caching
func (c *CachedStorage) GetServiceCategory(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	key := categoryCacheKey(id)
	if category, ok := cacheRead[entities.ServiceCategory](ctx, c, key); ok {
		return category, nil
	}

	category, err := c.Storage.GetServiceCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(key, category, categoryTTL)
	return category, nil
}

// ListServiceCategories retrieves all categories with caching
func (c *CachedStorage) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	if list, ok := cacheRead[[]*entities.ServiceCategory](ctx, c, categoriesListCacheKey); ok {
		return *list, nil
	}

	list, err := c.Storage.ListServiceCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(categoriesListCacheKey, list, categoryTTL)
	return list, nil
}

// ListProviderCategories retrieves a provider's category links with caching
func (c *CachedStorage) ListProviderCategories(ctx context.Context, providerID string) ([]*entities.ProviderCategory, error) {
	key := providerLinksCacheKey(providerID)
	if links, ok := cacheRead[[]*entities.ProviderCategory](ctx, c, key); ok {
		return *links, nil
	}

	links, err := c.Storage.ListProviderCategories(ctx, providerID)
	if err != nil {
		return nil, err
	}
	c.cacheWrite(key, links, providerLinksTTL)
	return links, nil
}

// UpdateUser updates a user and invalidates provider listings, which
// denormalize user summaries.
func (c *CachedStorage) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	user, err := c.Storage.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate("providers:list:*")
	return user, nil
}

// CreateServiceCategory creates a category and invalidates the catalog
func (c *CachedStorage) CreateServiceCategory(ctx context.Context, in entities.NewServiceCategory) (*entities.ServiceCategory, error) {
	category, err := c.Storage.CreateServiceCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(categoriesListCacheKey)
	return category, nil
}

// UpdateServiceCategory updates a category and invalidates its entries
func (c *CachedStorage) UpdateServiceCategory(ctx context.Context, id string, upd entities.ServiceCategoryUpdate) (*entities.ServiceCategory, error) {
	category, err := c.Storage.UpdateServiceCategory(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(categoryCacheKey(id), categoriesListCacheKey)
	return category, nil
}

// CreateProvider creates a provider and invalidates provider listings
func (c *CachedStorage) CreateProvider(ctx context.Context, in entities.NewProvider) (*entities.Provider, error) {
	provider, err := c.Storage.CreateProvider(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate("providers:list:*")
	return provider, nil
}

// UpdateProvider updates a provider and invalidates its entries and
// every listing
func (c *CachedStorage) UpdateProvider(ctx context.Context, id string, upd entities.ProviderUpdate) (*entities.Provider, error) {
	provider, err := c.Storage.UpdateProvider(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(
		providerCacheKey(id),
		providerByUserCacheKey(provider.UserID),
		"providers:list:*",
	)
	return provider, nil
}

// CreateProviderCategory links a provider to a category and
// invalidates the provider's cached links
func (c *CachedStorage) CreateProviderCategory(ctx context.Context, in entities.NewProviderCategory) (*entities.ProviderCategory, error) {
	link, err := c.Storage.CreateProviderCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(providerLinksCacheKey(in.ProviderID))
	return link, nil
}

// cacheRead returns the cached value for key when present and intact.
func cacheRead[T any](ctx context.Context, c *CachedStorage, key string) (*T, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		observability.RecordCacheMiss(ctx, c.metrics, key)
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached value")
		observability.RecordCacheMiss(ctx, c.metrics, key)
		return nil, false
	}
	observability.RecordCacheHit(ctx, c.metrics, key)
	return &value, true
}

// cacheWrite stores the value asynchronously so responses never wait
// on the cache.
func (c *CachedStorage) cacheWrite(key string, value any, ttlSeconds int) {
	go func() {
		bgCtx := context.Background()
		data, err := json.Marshal(value)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache")
			return
		}
		if err := c.cache.Set(bgCtx, key, data, ttlSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache value")
		}
	}()
}

// invalidate removes keys asynchronously; names ending in * are
// treated as patterns.
func (c *CachedStorage) invalidate(keys ...string) {
	go func() {
		bgCtx := context.Background()
		for _, key := range keys {
			var err error
			if len(key) > 0 && key[len(key)-1] == '*' {
				err = c.cache.DeletePattern(bgCtx, key)
			} else {
				err = c.cache.Delete(bgCtx, key)
			}
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache")
			}
		}
	}()
}
