package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stockroom/stockroom/internal/metrics"
	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/repository"
	"github.com/stockroom/stockroom/internal/validation"
)

// ErrProductNotFound indicates the requested product does not exist.
var ErrProductNotFound = errors.New("product not found")

// maxSlugRetries bounds the auto-derived slug suffix search when two
// requests race for the same name.
const maxSlugRetries = 5

// ProductStore is the persistence contract consumed by ProductService.
// *repository.Repository satisfies it.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, offset, limit int) ([]*model.Product, int64, error)
}

// ProductService handles product catalog business logic.
type ProductService struct {
	store           ProductStore
	metrics         metrics.Recorder
	defaultPageSize int
	maxPageSize     int
}

// NewProductService creates a new ProductService.
func NewProductService(store ProductStore, recorder metrics.Recorder, defaultPageSize, maxPageSize int) *ProductService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if defaultPageSize <= 0 {
		defaultPageSize = 15
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &ProductService{
		store:           store,
		metrics:         recorder,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products    []*model.Product
	CurrentPage int
	PerPage     int
	Total       int64
}

// ListProducts returns one page of products in insertion order.
// An empty catalog is a valid, non-error result.
func (s *ProductService) ListProducts(ctx context.Context, page, perPage int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.defaultPageSize
	}
	if perPage > s.maxPageSize {
		perPage = s.maxPageSize
	}

	products, total, err := s.store.ListProducts(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.metrics.IncProductListed()

	return &ProductPage{
		Products:    products,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

// GetProductBySlug retrieves a single product by its unique slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	s.metrics.IncProductRetrieved()

	return product, nil
}

// CreateProduct validates the raw request fields and persists a new product.
// All field violations are aggregated into one validation error before any
// write happens; nothing is persisted on failure.
func (s *ProductService) CreateProduct(ctx context.Context, fields Fields) (*model.Product, error) {
	input, verrs := parseProductFields(fields, false)

	// Uniqueness joins the other field errors so all violations are
	// reported together. The insert below remains the race authority.
	if input.slug != nil && len(verrs["slug"]) == 0 {
		taken, err := s.store.SlugExists(ctx, *input.slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			verrs.Add("slug", msgSlugTaken)
		}
	}

	if !verrs.Empty() {
		return nil, validation.NewError(verrs)
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:        generateULID(),
		Name:      *input.name,
		Price:     *input.price,
		Quantity:  *input.quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.description != nil {
		product.Description = *input.description
	}

	if input.slug != nil {
		product.Slug = *input.slug
		if err := s.store.CreateProduct(ctx, product); err != nil {
			if errors.Is(err, repository.ErrSlugExists) {
				// Lost a concurrent race for the same explicit slug.
				return nil, validation.Single("slug", msgSlugTaken)
			}
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
	} else {
		if err := s.createWithDerivedSlug(ctx, product); err != nil {
			return nil, err
		}
	}

	s.metrics.IncProductCreated()

	return product, nil
}

// createWithDerivedSlug derives the slug from the product name and appends a
// numeric suffix (-2, -3, ...) while the derived slug is taken. The store's
// unique index stays the final authority for concurrent creates.
func (s *ProductService) createWithDerivedSlug(ctx context.Context, product *model.Product) error {
	base := Slugify(product.Name)
	if base == "" {
		// Name had no alphanumeric characters at all; fall back to the ID.
		base = strings.ToLower(product.ID)
	}

	slug := base
	for attempt := 2; attempt <= maxSlugRetries+1; attempt++ {
		taken, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}

		if !taken {
			product.Slug = slug
			err := s.store.CreateProduct(ctx, product)
			if err == nil {
				s.metrics.ObserveSlugRetries(attempt - 2)
				return nil
			}
			if !errors.Is(err, repository.ErrSlugExists) {
				return fmt.Errorf("failed to create product: %w", err)
			}
			// Lost a race for this candidate; fall through to the next suffix.
		}

		slug = fmt.Sprintf("%s-%d", base, attempt)
	}

	return validation.Single("slug", msgSlugTaken)
}

// UpdateProduct applies a partial update to the product with the given ID.
// Only supplied fields are validated and mutated; the slug never changes
// unless explicitly supplied.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields Fields) (*model.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	input, verrs := parseProductFields(fields, true)

	if input.slug != nil && *input.slug != product.Slug && len(verrs["slug"]) == 0 {
		taken, err := s.store.SlugExists(ctx, *input.slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			verrs.Add("slug", msgSlugTaken)
		}
	}

	if !verrs.Empty() {
		return nil, validation.NewError(verrs)
	}

	if input.name != nil {
		product.Name = *input.name
	}
	if input.description != nil {
		product.Description = *input.description
	}
	if input.price != nil {
		product.Price = *input.price
	}
	if input.quantity != nil {
		product.Quantity = *input.quantity
	}
	if input.slug != nil {
		product.Slug = *input.slug
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			// Deleted between the read and the write.
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrSlugExists):
			return nil, validation.Single("slug", msgSlugTaken)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.metrics.IncProductUpdated()

	return product, nil
}

// DeleteProduct hard-deletes the product with the given ID.
// Deleting an already-deleted product reports ErrProductNotFound.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.metrics.IncProductDeleted()

	return nil
}
