package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamsurajx/new-seller-server/media"
	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/repository"
	"github.com/iamsurajx/new-seller-server/utils"
)

// ProductService owns the product lifecycle: uploading staged media to the
// remote store, persisting the record, and cleaning up on every failure
// path. Local staged files never outlive the call; remote assets uploaded
// for a create that later fails are destroyed again.
type ProductService struct {
	repo  repository.ProductRepository
	store media.Store
	log   *zap.SugaredLogger
}

func NewProductService(repo repository.ProductRepository, store media.Store, log *zap.SugaredLogger) *ProductService {
	return &ProductService{repo: repo, store: store, log: log}
}

type CreateProductInput struct {
	Name          string
	Description   string
	Category      string
	SellerID      string
	ProductType   string
	OriginalPrice *float64
	SalePrice     float64
}

// UpdateProductInput carries partial updates: nil fields keep their current
// values.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Category      *string
	SellerID      *string
	ProductType   *string
	OriginalPrice *float64
	SalePrice     *float64
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput, image, video *utils.StagedFile) (*models.Product, error) {
	defer s.removeStaged(image, video)

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		SellerID:      input.SellerID,
		ProductType:   input.ProductType,
		OriginalPrice: input.OriginalPrice,
		SalePrice:     input.SalePrice,
	}

	var uploaded []uploadedAsset

	if image != nil {
		asset, err := s.store.Upload(ctx, image.Path, media.KindImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		product.ImageURL = asset.URL
		product.ImagePublicID = asset.PublicID
		uploaded = append(uploaded, uploadedAsset{asset, media.KindImage})
		s.removeStaged(image)
	}

	if video != nil {
		asset, err := s.store.Upload(ctx, video.Path, media.KindVideo)
		if err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		product.VideoURL = asset.URL
		product.VideoPublicID = asset.PublicID
		uploaded = append(uploaded, uploadedAsset{asset, media.KindVideo})
		s.removeStaged(video)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.rollbackUploads(ctx, uploaded)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput, image, video *utils.StagedFile) (*models.Product, error) {
	defer s.removeStaged(image, video)

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if product.ImageURL != "" {
			s.destroyAsset(ctx, product.ImagePublicID, product.ImageURL, media.KindImage)
		}
		asset, err := s.store.Upload(ctx, image.Path, media.KindImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		product.ImageURL = asset.URL
		product.ImagePublicID = asset.PublicID
		s.removeStaged(image)
	}

	if video != nil {
		if product.VideoURL != "" {
			s.destroyAsset(ctx, product.VideoPublicID, product.VideoURL, media.KindVideo)
		}
		asset, err := s.store.Upload(ctx, video.Path, media.KindVideo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		product.VideoURL = asset.URL
		product.VideoPublicID = asset.PublicID
		s.removeStaged(video)
	}

	applyUpdates(product, input)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return product, nil
}

// Delete removes the product's remote assets, image first, then the record.
// A remote asset that is already gone does not block the delete.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.ImageURL != "" {
		s.destroyAsset(ctx, product.ImagePublicID, product.ImageURL, media.KindImage)
	}
	if product.VideoURL != "" {
		s.destroyAsset(ctx, product.VideoPublicID, product.VideoURL, media.KindVideo)
	}

	return s.repo.Delete(ctx, id)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

func applyUpdates(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.SellerID != nil {
		product.SellerID = *input.SellerID
	}
	if input.ProductType != nil {
		product.ProductType = *input.ProductType
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.SalePrice != nil {
		product.SalePrice = *input.SalePrice
	}
}

// destroyAsset deletes a remote asset, preferring the stored public ID and
// falling back to deriving it from the URL for records that predate the
// stored field. Failures are logged and never escalate: a vanished remote
// asset must not leave the record stuck.
func (s *ProductService) destroyAsset(ctx context.Context, publicID, url string, kind media.Kind) {
	if publicID == "" {
		publicID = media.PublicIDFromURL(url)
	}
	if err := s.store.Destroy(ctx, publicID, kind); err != nil {
		s.log.Warnw("failed to delete remote asset", "public_id", publicID, "kind", kind, "error", err)
	}
}

type uploadedAsset struct {
	asset media.Asset
	kind  media.Kind
}

// rollbackUploads destroys assets uploaded earlier in a create that failed
// partway, so a failed create leaves nothing behind in the remote store.
func (s *ProductService) rollbackUploads(ctx context.Context, uploaded []uploadedAsset) {
	for _, u := range uploaded {
		if err := s.store.Destroy(ctx, u.asset.PublicID, u.kind); err != nil {
			s.log.Warnw("failed to roll back uploaded asset", "public_id", u.asset.PublicID, "error", err)
		}
	}
}

func (s *ProductService) removeStaged(files ...*utils.StagedFile) {
	for _, f := range files {
		if err := f.Remove(); err != nil {
			s.log.Warnw("failed to remove staged upload", "path", f.Path, "error", err)
		}
	}
}
