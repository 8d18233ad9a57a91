package queries

import (
	"context"
	"log/slog"

	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
)

var (
	ErrProductNotFound = errs.New("product not found")
	ErrInvalidPage     = errs.New("invalid page request")
)

// CatalogCache holds one full-catalog snapshot per featured filter.
// Implementations must treat entries older than their TTL as absent.
type CatalogCache interface {
	Get(ctx context.Context, featured bool) (*CatalogSnapshot, bool)
	Put(ctx context.Context, featured bool, products []ProductView)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id int64) (*ProductView, error)
	FindPage(ctx context.Context, featuredOnly bool, limit, offset int32) ([]ProductView, error)
	Count(ctx context.Context, featuredOnly bool) (int64, error)
	FindAll(ctx context.Context, featuredOnly bool) ([]ProductView, error)
}

type ProductListRequest struct {
	Featured bool
	Page     PageRequest
}

type ProductPage struct {
	Products []ProductView `json:"products"`
	PageInfo
	Cached bool `json:"cached"`
}

type ProductQueries interface {
	GetByID(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, req ProductListRequest) (*ProductPage, error)
}

type CatalogOptions struct {
	StorageBaseURL string
	PageSize       int
}

type productQueriesImpl struct {
	readStore ProductReadStore
	cache     CatalogCache
	opts      CatalogOptions
	logger    *slog.Logger
}

func NewProductQueries(readStore ProductReadStore, cache CatalogCache, opts CatalogOptions, logger *slog.Logger) ProductQueries {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &productQueriesImpl{
		readStore: readStore,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id int64) (*ProductView, error) {
	if id <= 0 {
		return nil, ErrProductNotFound
	}
	p, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	q.resolveImage(p)
	return p, nil
}

// List serves the first page at the default size from the catalog cache when
// a fresh snapshot exists. Every other page goes to the store. Stock numbers
// in a cached page may be up to one TTL old.
func (q *productQueriesImpl) List(ctx context.Context, req ProductListRequest) (*ProductPage, error) {
	page := req.Page
	if page.Page < 1 || page.Limit < 1 {
		return nil, ErrInvalidPage
	}
	page.Limit = ValidateLimit(page.Limit)
	cacheable := page.Page == 1 && page.Limit == q.opts.PageSize

	if cacheable {
		if snap, ok := q.cache.Get(ctx, req.Featured); ok {
			products := snap.Products
			if len(products) > page.Limit {
				products = products[:page.Limit]
			}
			return &ProductPage{
				Products: products,
				PageInfo: page.Info(int64(len(snap.Products))),
				Cached:   true,
			}, nil
		}
	}

	products, err := q.readStore.FindPage(ctx, req.Featured, int32(page.Limit), page.Offset()) // #nosec G115 -- limit is clamped
	if err != nil {
		return nil, err
	}
	total, err := q.readStore.Count(ctx, req.Featured)
	if err != nil {
		return nil, err
	}
	q.resolveImages(products)

	if cacheable {
		q.refresh(ctx, req.Featured)
	}

	if total == 0 {
		total = int64(len(products))
	}
	return &ProductPage{
		Products: products,
		PageInfo: page.Info(total),
		Cached:   false,
	}, nil
}

// refresh stores a full snapshot for the filter. A failed read only skips
// the refresh; the page itself was already served from the store.
func (q *productQueriesImpl) refresh(ctx context.Context, featured bool) {
	all, err := q.readStore.FindAll(ctx, featured)
	if err != nil {
		q.logger.Warn("failed to refresh catalog cache", "featured", featured, "error", err)
		return
	}
	q.resolveImages(all)
	q.cache.Put(ctx, featured, all)
}

func (q *productQueriesImpl) resolveImages(products []ProductView) {
	for i := range products {
		q.resolveImage(&products[i])
	}
}

func (q *productQueriesImpl) resolveImage(p *ProductView) {
	var imageURL, imagePath string
	if p.ImageURL != nil {
		imageURL = *p.ImageURL
	}
	if p.ImagePath != nil {
		imagePath = *p.ImagePath
	}
	resolved := product.ResolveImageURL(q.opts.StorageBaseURL, imageURL, imagePath)
	if resolved == "" {
		p.ImageURL = nil
		return
	}
	p.ImageURL = &resolved
}
