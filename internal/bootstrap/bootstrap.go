package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	"github.com/BruksfildServices01/semijoias-crm/internal/config"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/cartstore"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/notify"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/semijoias-crm/internal/infra/repository"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/storage"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
	ucCart "github.com/BruksfildServices01/semijoias-crm/internal/usecase/cart"
	ucTag "github.com/BruksfildServices01/semijoias-crm/internal/usecase/tag"
)

// Infra reúne os colaboradores externos compartilhados pela API e pela CLI.
type Infra struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Clock  timezone.Clock

	Clients  *infraRepo.ClientGormRepository
	TagStore *infraRepo.TagGormRepository
	Billing  *infraRepo.BillingGormRepository
	Products *infraRepo.ProductGormRepository
	Admins   *infraRepo.AdminGormRepository

	AuditLog *audit.Logger
	Audit    *audit.Dispatcher

	Registry  *tag.Registry
	Tags      *ucTag.Service
	Notifier  campaign.Notifier
	Templates *templates.Catalog
	Carts     cartstore.Store
	Checkout  ucCart.CheckoutProvider
	Images    storage.ObjectStore

	closers []func()
}

// New monta a infraestrutura. Colaboradores opcionais sem configuração
// caem para a versão local (log, memória) ou ficam nil.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Infra, error) {
	tpl, err := templates.Load(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}

	in := &Infra{
		Config:    cfg,
		DB:        db,
		Log:       log,
		Clock:     timezone.ShopClock(cfg.ShopTimezone),
		Clients:   infraRepo.NewClientGormRepository(db),
		TagStore:  infraRepo.NewTagGormRepository(db),
		Billing:   infraRepo.NewBillingGormRepository(db),
		Products:  infraRepo.NewProductGormRepository(db),
		Admins:    infraRepo.NewAdminGormRepository(db),
		AuditLog:  audit.New(db),
		Registry:  tag.NewRegistry(),
		Templates: tpl,
	}
	in.Audit = audit.NewDispatcher(in.AuditLog, log)
	in.closers = append(in.closers, in.Audit.Close)

	in.Tags = ucTag.NewService(in.Registry, in.TagStore, in.clientExists, in.Audit)
	if err := in.Tags.Hydrate(ctx); err != nil {
		in.Close()
		return nil, err
	}

	in.Notifier = newNotifier(cfg, log)
	in.Carts = newCartStore(ctx, cfg, log, in)
	in.Checkout = newCheckout(cfg, log)
	in.Images = newImageStore(cfg, log)

	return in, nil
}

// Close fecha na ordem inversa de abertura.
func (in *Infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		in.closers[i]()
	}
	in.closers = nil
}

func (in *Infra) clientExists(ctx context.Context, clientID string) error {
	_, err := in.Clients.Get(ctx, clientID)
	if err != nil {
		return clientNotFound(err)
	}
	return nil
}

func newNotifier(cfg *config.Config, log *zap.Logger) campaign.Notifier {
	dry := notify.LogSender{Log: log.Named("notify")}
	d := notify.Dispatcher{Email: dry, WhatsApp: dry}

	if cfg.Email.APIURL != "" {
		d.Email = notify.NewHTTPEmailSender(cfg.Email.APIURL, cfg.Email.APIKey, cfg.Email.From)
	} else {
		log.Warn("EMAIL_API_URL not set, e-mails will only be logged")
	}

	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		d.WhatsApp = notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom)
	} else {
		log.Warn("Twilio not configured, WhatsApp messages will only be logged")
	}
	return d
}

func newCartStore(ctx context.Context, cfg *config.Config, log *zap.Logger, in *Infra) cartstore.Store {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rdb, err := cartstore.NewRedisClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("redis unavailable, carts kept in memory", zap.Error(err))
		return cartstore.NewMemoryStore()
	}
	in.closers = append(in.closers, func() { _ = rdb.Close() })

	ttl := time.Duration(cfg.Cart.TTLHours) * time.Hour
	return cartstore.NewRedisStore(rdb, ttl)
}

func newCheckout(cfg *config.Config, log *zap.Logger) ucCart.CheckoutProvider {
	if cfg.Payment.AccessToken == "" {
		log.Warn("MP_ACCESS_TOKEN not set, checkout disabled")
		return nil
	}
	mp, err := payment.NewMercadoPago(cfg.Payment.AccessToken, cfg.Payment.SuccessURL)
	if err != nil {
		log.Error("mercadopago init failed, checkout disabled", zap.Error(err))
		return nil
	}
	return mp
}

func newImageStore(cfg *config.Config, log *zap.Logger) storage.ObjectStore {
	if cfg.Storage.Bucket == "" {
		log.Warn("S3_BUCKET not set, image upload disabled")
		return nil
	}
	return storage.NewS3Store(storage.S3Config{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		PublicURL: cfg.Storage.PublicURL,
	})
}
