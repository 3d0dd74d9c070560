package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/storage"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
)

var (
	ErrInvalidImage       = httperr.ErrBusiness("invalid_image")
	ErrStorageUnavailable = httperr.ErrBusiness("storage_unavailable")
)

type UploadImage struct {
	repo  domain.Repository
	store storage.ObjectStore
	audit *audit.Dispatcher
}

func NewUploadImage(
	repo domain.Repository,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
) *UploadImage {
	return &UploadImage{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

// Execute converte para WebP, envia ao bucket e anexa ao produto.
func (uc *UploadImage) Execute(ctx context.Context, productID string, raw []byte, altText string) (*domain.Image, error) {
	if uc.store == nil {
		return nil, ErrStorageUnavailable
	}

	if _, err := uc.repo.Get(ctx, productID); err != nil {
		return nil, notFound(err)
	}

	webp, err := storage.ToWebP(raw, storage.MaxImageWidth)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, ErrInvalidImage
		}
		return nil, err
	}

	id := uuid.NewString()
	key := fmt.Sprintf("products/%s/%s.webp", productID, id)
	url, err := uc.store.Put(ctx, key, webp, "image/webp")
	if err != nil {
		logger.FromContext(ctx).Error("image upload failed", zap.String("key", key), zap.Error(err))
		return nil, ErrStorageUnavailable
	}

	img := &domain.Image{ID: id, URL: url, AltText: altText}
	if err := uc.repo.AddImage(ctx, productID, img); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "product_image_added",
		Entity:   "product",
		EntityID: productID,
		Metadata: map[string]string{"url": url},
	})
	return img, nil
}
