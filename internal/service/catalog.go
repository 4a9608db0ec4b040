package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/transport"
	"github.com/Skotchmaster/shop_api/pkg/logging"
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) (repo.Result, error)
	UpdateProduct(ctx context.Context, id uint, prod *models.Product) (repo.Result, error)
	DeleteProduct(ctx context.Context, id uint) (repo.Result, error)
}

type CatalogService struct {
	Repo   ProductStore
	Events events.Publisher
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest, actor uint) (*models.Product, error) {
	prod, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	res, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	prod.ID = res.InsertedID

	s.publish(ctx, events.ProductEvent{Type: events.ProductCreated, ProductID: prod.ID, Name: prod.Name, UserID: actor})
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest, actor uint) (*models.Product, error) {
	prod, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	res, err := s.Repo.UpdateProduct(ctx, id, prod)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.AffectedRows == 0 {
		return nil, ErrNotFound
	}
	prod.ID = id

	s.publish(ctx, events.ProductEvent{Type: events.ProductUpdated, ProductID: id, Name: prod.Name, UserID: actor})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint, actor uint) error {
	res, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.AffectedRows == 0 {
		return ErrNotFound
	}

	s.publish(ctx, events.ProductEvent{Type: events.ProductDeleted, ProductID: id, UserID: actor})
	return nil
}

func (s *CatalogService) publish(ctx context.Context, event events.ProductEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, events.TopicProducts, strconv.FormatUint(uint64(event.ProductID), 10), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicProducts, "type", event.Type, "error", err)
	}
}

func productFromRequest(req transport.ProductRequest) (*models.Product, error) {
	if req.Name == "" || !req.HasPrice() {
		return nil, fmt.Errorf("%w: name and price are required", ErrValidation)
	}
	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}, nil
}
