// internal/platform/di/container.go
package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/api/option"

	httpin "nftminter/internal/adapters/in/http"
	"nftminter/internal/adapters/in/http/middleware"
	dbadapter "nftminter/internal/adapters/out/db"
	fsadapter "nftminter/internal/adapters/out/firestore"
	gcsadapter "nftminter/internal/adapters/out/gcs"
	mailadapter "nftminter/internal/adapters/out/mail"
	memadapter "nftminter/internal/adapters/out/memory"
	usecase "nftminter/internal/application/usecase"
	"nftminter/internal/domain/activity"
	"nftminter/internal/domain/nft"
	appcfg "nftminter/internal/infra/config"
	solanainfra "nftminter/internal/infra/solana"
	"nftminter/internal/platform/metrics"
	"nftminter/internal/runtime"
)

// Container owns every client and adapter of the API process.
type Container struct {
	Config *appcfg.Config

	Chain      usecase.ChainExecutor
	NFTUsecase *usecase.NFTUsecase

	Registry    *prometheus.Registry
	Metrics     *metrics.Collector
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter

	closers []func() error
}

// NewContainer wires the process. The chain executor and activity store are strict;
// storage, mail and auth are skipped with a warning when unconfigured.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}

	var clientOpts []option.ClientOption
	if f := strings.TrimSpace(cfg.FirestoreCredentialsFile); f != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(f))
	}

	// 1) metrics
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewCollector(c.Registry)

	// 2) chain
	chain, err := c.newChain(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Chain = chain

	// 3) activity store
	activities, err := c.newActivityRepository(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	// 4) object storage (optional)
	var objects usecase.ObjectStorage
	if bucket := strings.TrimSpace(cfg.GCSBucket); bucket != "" {
		gcs, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("di: storage.NewClient: %w", err)
		}
		c.closers = append(c.closers, gcs.Close)
		objects = gcsadapter.NewObjectRepositoryGCS(gcs, bucket, "nft/")
		log.Printf("[di] GCS object storage bucket=%s", bucket)
	} else {
		log.Printf("[di] WARN: GCS_BUCKET empty; /upload-image and metadata upload disabled")
	}

	// 5) mail (optional)
	var mailer usecase.CertificateMailer
	if cfg.MailEnabled() {
		mailer = mailadapter.NewCertificateMailer(
			mailadapter.NewSendGridClient(cfg.SendGridAPIKey),
			cfg.MailFrom, cfg.MailFromName, cfg.ExplorerBaseURL, cfg.Cluster,
		)
		log.Printf("[di] SendGrid certificate mailer from=%s", cfg.MailFrom)
	} else {
		log.Printf("[di] mail disabled (SENDGRID_API_KEY or MAIL_FROM empty)")
	}

	// 6) auth (optional)
	if cfg.AuthEnabled {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("di: firebase.NewApp: %w", err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("di: firebase auth: %w", err)
		}
		c.Auth = &middleware.AuthMiddleware{Verifier: authClient}
		log.Printf("[di] Firebase auth enabled project=%s", cfg.FirebaseProjectID)
	}

	// 7) rate limit
	if cfg.RateLimitRPS > 0 {
		c.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 5*time.Minute)
		c.closers = append(c.closers, func() error { c.RateLimiter.Stop(); return nil })
	}

	c.NFTUsecase = usecase.NewNFTUsecase(chain, objects, mailer, activities, c.Metrics)
	return c, nil
}

func (c *Container) newChain(ctx context.Context) (usecase.ChainExecutor, error) {
	cfg := c.Config
	programID, err := nft.ParseAddress(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("di: NFT_PROGRAM_ID: %w", err)
	}
	authority, err := solanainfra.LoadAuthority(ctx, solanainfra.KeySource{
		SecretName:     cfg.MintKeySecret,
		Path:           cfg.KeypairPath,
		AllowEphemeral: cfg.Mode == appcfg.ModeLocal,
	})
	if err != nil {
		return nil, fmt.Errorf("di: load authority: %w", err)
	}

	if cfg.Mode == appcfg.ModeRPC {
		log.Printf("[di] chain=rpc url=%s program=%s authority=%s", cfg.RPCURL, cfg.ProgramID, authority.PublicKey.ToBase58())
		return solanainfra.NewRPCExecutor(cfg.RPCURL, authority, programID), nil
	}

	var store runtime.Store
	if p := strings.TrimSpace(cfg.LedgerPath); p != "" {
		bs, err := runtime.OpenBoltStore(p)
		if err != nil {
			return nil, fmt.Errorf("di: open ledger %s: %w", p, err)
		}
		store = bs
	} else {
		store = runtime.NewMemoryStore()
	}
	bank := solanainfra.NewLocalBank(store, programID)
	c.closers = append(c.closers, bank.Close)

	exec := solanainfra.NewLocalExecutor(bank, authority, programID)
	if cfg.AirdropLamports > 0 {
		if err := exec.Airdrop(ctx, authority.PublicKey, cfg.AirdropLamports); err != nil {
			return nil, fmt.Errorf("di: airdrop: %w", err)
		}
	}
	log.Printf("[di] chain=local ledger=%q program=%s authority=%s", cfg.LedgerPath, cfg.ProgramID, authority.PublicKey.ToBase58())
	return exec, nil
}

func (c *Container) newActivityRepository(ctx context.Context) (activity.RepositoryPort, error) {
	cfg := c.Config
	switch cfg.ActivityStore {
	case appcfg.ActivityStoreFirestore:
		client, err := fsadapter.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		log.Printf("[di] activity store=firestore project=%s", cfg.FirestoreProjectID)
		return fsadapter.NewActivityRepositoryFS(client), nil

	case appcfg.ActivityStorePostgres:
		db, err := dbadapter.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		if err := pingDB(ctx, db); err != nil {
			return nil, err
		}
		log.Printf("[di] activity store=postgres")
		return dbadapter.NewActivityRepositoryPG(db), nil

	default:
		log.Printf("[di] activity store=memory")
		return memadapter.NewActivityRepository(), nil
	}
}

func pingDB(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("di: postgres ping: %w", err)
	}
	return nil
}

// RouterDeps exposes what the HTTP router mounts.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		NFT:            c.NFTUsecase,
		MaxUploadBytes: c.Config.MaxUploadBytes,
		AllowedOrigins: c.Config.AllowedOrigins,
		Auth:           c.Auth,
		RateLimiter:    c.RateLimiter,
		Recorder:       c.Metrics,
		MetricsHandler: metrics.Handler(c.Registry),
	}
}

// Handler builds the full router.
func (c *Container) Handler() http.Handler {
	return httpin.NewRouter(c.RouterDeps())
}

// Close releases clients in reverse order of creation.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
