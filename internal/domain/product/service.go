package product

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/cache"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/pagination"
)

const genKey = "products:gen"

var slugJunk = regexp.MustCompile(`[^a-z0-9]+`)

type Service struct {
	products RepositoryInterface
	cache    cache.Cache
	ttl      time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(products RepositoryInterface, c cache.Cache, ttl time.Duration, log logrus.FieldLogger) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{
		products: products,
		cache:    c,
		ttl:      ttl,
		log:      logger.OrDiscard(log),
		now:      time.Now,
	}
}

type cachedPage struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}

// List serves public listings from the cache. Writes bump a generation
// counter so stale pages are never read again.
func (s *Service) List(ctx context.Context, f ListFilter, p pagination.Params) ([]Product, int64, error) {
	if f.IncludeInactive {
		return s.products.List(ctx, f, p)
	}

	key := s.listKey(ctx, f, p)
	var page cachedPage
	if ok, err := s.cache.Get(ctx, key, &page); err != nil {
		s.log.WithError(err).Warn("product cache read failed")
	} else if ok {
		return page.Items, page.Total, nil
	}

	items, total, err := s.products.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	if err := s.cache.Set(ctx, key, cachedPage{Items: items, Total: total}, s.ttl); err != nil {
		s.log.WithError(err).Warn("product cache write failed")
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64, includeInactive bool) (*Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive && !includeInactive {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, ErrValidation
	}

	p := &Product{
		Name:           strings.TrimSpace(req.Name),
		Slug:           slug,
		Description:    req.Description,
		Category:       strings.ToLower(strings.TrimSpace(req.Category)),
		Price:          round(req.Price),
		CompareAtPrice: roundPtr(req.CompareAtPrice),
		Stock:          req.Stock,
		Images:         req.Images,
		IsActive:       true,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"product_id": p.ID, "slug": p.Slug}).Info("product created")
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, ErrValidation
		}
		p.Slug = slug
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Price != nil {
		p.Price = round(*req.Price)
	}
	if req.CompareAtPrice != nil {
		// zero clears it
		if *req.CompareAtPrice == 0 {
			p.CompareAtPrice = nil
		} else {
			p.CompareAtPrice = roundPtr(req.CompareAtPrice)
		}
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ErrValidation
		}
		p.Stock = *req.Stock
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	p, err := s.products.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = false
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Invalidate drops cached listings. Orders call it after moving stock.
func (s *Service) Invalidate(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Set(ctx, genKey, s.now().UnixNano(), 0); err != nil {
		s.log.WithError(err).Warn("product cache invalidation failed")
	}
}

func (s *Service) listKey(ctx context.Context, f ListFilter, p pagination.Params) string {
	var gen int64
	_, _ = s.cache.Get(ctx, genKey, &gen)

	var b strings.Builder
	fmt.Fprintf(&b, "products:list:%d:%s:%s:%s", gen, strings.ToLower(f.Category), strings.ToLower(strings.TrimSpace(f.Query)), f.Sort)
	if f.MinPrice != nil {
		fmt.Fprintf(&b, ":min=%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		fmt.Fprintf(&b, ":max=%g", *f.MaxPrice)
	}
	fmt.Fprintf(&b, ":%d:%d", p.Page, p.Limit)
	return b.String()
}

// Slugify lower-cases s and collapses anything but letters and digits into
// single dashes.
func Slugify(s string) string {
	s = slugJunk.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v)
	return &r
}
