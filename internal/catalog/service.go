package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes catalog entity management for articles, products and
// promotions. Updates apply partial-patch semantics: only supplied fields are
// written, and updated_at refreshes on every successful mutation. Deletion is
// not part of this contract; it belongs to the relationship integrity
// manager, which owns the cascading cleanup of link rows.
type Service interface {
	CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error)
	UpdateArticle(ctx context.Context, req UpdateArticleRequest) (*Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	GetArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]*Article, error)
	ListArticles(ctx context.Context) ([]*Article, error)
	ListArticlesByCategory(ctx context.Context, category string) ([]*Article, error)

	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)

	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	UpdatePromotion(ctx context.Context, req UpdatePromotionRequest) (*Promotion, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*Promotion, error)
	GetPromotionsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Promotion, error)
	ListPromotions(ctx context.Context) ([]*Promotion, error)
	ListPromotionsByCategory(ctx context.Context, category string) ([]*Promotion, error)
}

// CreateArticleRequest captures the payload required to create an article.
type CreateArticleRequest struct {
	Title    string
	Category string
	Content  *string
	ImageURL *string
}

// UpdateArticleRequest mutates an article; nil fields are left untouched.
type UpdateArticleRequest struct {
	ID       uuid.UUID
	Title    *string
	Category *string
	Content  *string
	ImageURL *string
}

// CreateProductRequest captures the payload required to create a product.
type CreateProductRequest struct {
	Name        string
	Category    string
	Price       *float64
	Description *string
	ImageURL    *string
}

// UpdateProductRequest mutates a product; nil fields are left untouched.
type UpdateProductRequest struct {
	ID          uuid.UUID
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	ImageURL    *string
}

// CreatePromotionRequest captures the payload required to create a promotion.
type CreatePromotionRequest struct {
	Title       string
	Category    string
	Description *string
	ImageURL    *string
}

// UpdatePromotionRequest mutates a promotion; nil fields are left untouched.
type UpdatePromotionRequest struct {
	ID          uuid.UUID
	Title       *string
	Category    *string
	Description *string
	ImageURL    *string
}

var (
	ErrArticleTitleRequired   = errors.New("catalog: article title is required")
	ErrArticleIDRequired      = errors.New("catalog: article id required")
	ErrArticleNotFound        = errors.New("catalog: article not found")
	ErrProductNameRequired    = errors.New("catalog: product name is required")
	ErrProductIDRequired      = errors.New("catalog: product id required")
	ErrProductNotFound        = errors.New("catalog: product not found")
	ErrPromotionTitleRequired = errors.New("catalog: promotion title is required")
	ErrPromotionIDRequired    = errors.New("catalog: promotion id required")
	ErrPromotionNotFound      = errors.New("catalog: promotion not found")
)

// ArticleRepository abstracts storage operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, record *Article) (*Article, error)
	Update(ctx context.Context, record *Article) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Article, error)
	List(ctx context.Context) ([]*Article, error)
	ListByCategory(ctx context.Context, category string) ([]*Article, error)
}

// ProductRepository abstracts storage operations for products.
type ProductRepository interface {
	Create(ctx context.Context, record *Product) (*Product, error)
	Update(ctx context.Context, record *Product) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
}

// PromotionRepository abstracts storage operations for promotions.
type PromotionRepository interface {
	Create(ctx context.Context, record *Promotion) (*Promotion, error)
	Update(ctx context.Context, record *Promotion) (*Promotion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Promotion, error)
	List(ctx context.Context) ([]*Promotion, error)
	ListByCategory(ctx context.Context, category string) ([]*Promotion, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

type service struct {
	articles   ArticleRepository
	products   ProductRepository
	promotions PromotionRepository
	now        func() time.Time
	id         IDGenerator
}

// NewService constructs a catalog service with the required repositories.
func NewService(articles ArticleRepository, products ProductRepository, promotions PromotionRepository, opts ...ServiceOption) Service {
	s := &service{
		articles:   articles,
		products:   products,
		promotions: promotions,
		now:        time.Now,
		id:         uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrArticleTitleRequired
	}
	now := s.now()
	return s.articles.Create(ctx, &Article{
		ID:        s.id(),
		Title:     strings.TrimSpace(req.Title),
		Category:  strings.TrimSpace(req.Category),
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *service) UpdateArticle(ctx context.Context, req UpdateArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, ErrArticleIDRequired
	}
	record, err := s.articles.GetByID(ctx, req.ID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrArticleTitleRequired
		}
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		record.Category = strings.TrimSpace(*req.Category)
	}
	if req.Content != nil {
		record.Content = req.Content
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}

	record.UpdatedAt = s.now()
	return s.articles.Update(ctx, record)
}

func (s *service) GetArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	record, err := s.articles.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetArticlesByIDs tolerates missing ids by omitting them from the result.
// Result order relative to the input is not guaranteed.
func (s *service) GetArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]*Article, error) {
	if len(ids) == 0 {
		return []*Article{}, nil
	}
	return s.articles.ListByIDs(ctx, ids)
}

func (s *service) ListArticles(ctx context.Context) ([]*Article, error) {
	return s.articles.List(ctx)
}

func (s *service) ListArticlesByCategory(ctx context.Context, category string) ([]*Article, error) {
	return s.articles.ListByCategory(ctx, strings.TrimSpace(category))
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrProductNameRequired
	}
	now := s.now()
	return s.products.Create(ctx, &Product{
		ID:          s.id(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error) {
	if req.ID == uuid.Nil {
		return nil, ErrProductIDRequired
	}
	record, err := s.products.GetByID(ctx, req.ID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrProductNameRequired
		}
		record.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		record.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		record.Price = req.Price
	}
	if req.Description != nil {
		record.Description = req.Description
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}

	record.UpdatedAt = s.now()
	return s.products.Update(ctx, record)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	record, err := s.products.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetProductsByIDs tolerates missing ids by omitting them from the result.
func (s *service) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}
	return s.products.ListByIDs(ctx, ids)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.products.List(ctx)
}

func (s *service) ListProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.products.ListByCategory(ctx, strings.TrimSpace(category))
}

func (s *service) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrPromotionTitleRequired
	}
	now := s.now()
	return s.promotions.Create(ctx, &Promotion{
		ID:          s.id(),
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *service) UpdatePromotion(ctx context.Context, req UpdatePromotionRequest) (*Promotion, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPromotionIDRequired
	}
	record, err := s.promotions.GetByID(ctx, req.ID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrPromotionTitleRequired
		}
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		record.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		record.Description = req.Description
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}

	record.UpdatedAt = s.now()
	return s.promotions.Update(ctx, record)
}

func (s *service) GetPromotion(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	record, err := s.promotions.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetPromotionsByIDs tolerates missing ids by omitting them from the result.
func (s *service) GetPromotionsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Promotion, error) {
	if len(ids) == 0 {
		return []*Promotion{}, nil
	}
	return s.promotions.ListByIDs(ctx, ids)
}

func (s *service) ListPromotions(ctx context.Context) ([]*Promotion, error) {
	return s.promotions.List(ctx)
}

func (s *service) ListPromotionsByCategory(ctx context.Context, category string) ([]*Promotion, error) {
	return s.promotions.ListByCategory(ctx, strings.TrimSpace(category))
}
