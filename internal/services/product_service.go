package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"farmfresh/internal/models"
	"farmfresh/internal/repositories"
)

// ProductServiceInterface serves the storefront catalog the cart adds
// from, resolving stored image object keys to presigned URLs.
type ProductServiceInterface interface {
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProductImage(ctx context.Context, id int64, filename, contentType string, reader io.Reader, size int64) error
}

type productService struct {
	products      repositories.ProductRepository
	images        MinioService
	imageBucket   string
	presignExpiry time.Duration
}

func NewProductService(products repositories.ProductRepository, images MinioService, imageBucket string, presignExpiry time.Duration) ProductServiceInterface {
	return &productService{
		products:      products,
		images:        images,
		imageBucket:   imageBucket,
		presignExpiry: presignExpiry,
	}
}

// resolveImage fills ImageURL from the stored object key. A presign
// failure leaves the URL empty rather than failing the catalog request.
func (s *productService) resolveImage(ctx context.Context, product *models.Product) {
	if product.ImageObject == "" {
		return
	}
	url, err := s.images.GetPresignedURL(ctx, s.imageBucket, product.ImageObject, s.presignExpiry)
	if err != nil {
		log.Printf("WARN: presign image %s for product %d: %v", product.ImageObject, product.ID, err)
		return
	}
	product.ImageURL = url
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	products, err := s.products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		s.resolveImage(ctx, product)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveImage(ctx, product)
	return product, nil
}

// SetProductImage uploads the image to the bucket and points the product
// at the new object key. A previous image object is removed once the
// reference moves; a failed removal only leaves an orphaned object.
func (s *productService) SetProductImage(ctx context.Context, id int64, filename, contentType string, reader io.Reader, size int64) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	objectName := fmt.Sprintf("products/%d/%s", id, filename)
	if err := s.images.UploadImage(ctx, s.imageBucket, objectName, contentType, reader, size); err != nil {
		return fmt.Errorf("upload product image: %w", err)
	}
	if err := s.products.UpdateImageObject(ctx, id, objectName); err != nil {
		return fmt.Errorf("update product image reference: %w", err)
	}

	if old := product.ImageObject; old != "" && old != objectName {
		if err := s.images.DeleteImage(ctx, s.imageBucket, old); err != nil {
			log.Printf("WARN: remove replaced image %s for product %d: %v", old, id, err)
		}
	}
	return nil
}
