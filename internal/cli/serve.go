package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/gumtree-backend/internal/admin"
	"github.com/wichananm65/gumtree-backend/internal/auth"
	"github.com/wichananm65/gumtree-backend/internal/category"
	"github.com/wichananm65/gumtree-backend/internal/chat"
	"github.com/wichananm65/gumtree-backend/internal/config"
	"github.com/wichananm65/gumtree-backend/internal/contact"
	"github.com/wichananm65/gumtree-backend/internal/product"
	"github.com/wichananm65/gumtree-backend/internal/server"
	"github.com/wichananm65/gumtree-backend/internal/upload"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.db.Close()

	if err := e.migrate(ctx); err != nil {
		return err
	}

	issuer := auth.NewIssuer(e.cfg.JWTSecret, e.cfg.TokenTTL)
	admins := admin.NewService(admin.NewPostgresRepository(e.db), issuer)
	if err := e.seedAdmin(ctx, admins); err != nil {
		return err
	}

	categories := category.NewService(category.NewPostgresRepository(e.db))
	products := product.NewService(product.NewPostgresRepository(e.db))
	if e.cfg.StrictCategoryRefs {
		products = products.WithStrictCategories(categories)
	}

	backend, uploadDir, err := newUploader(ctx, e.cfg.Upload)
	if err != nil {
		return err
	}
	e.log.Info(ctx, "upload backend ready", "backend", e.cfg.Upload.Backend)

	app := server.New(server.Deps{
		Issuer:     issuer,
		Admin:      admin.NewHandler(admins, e.log),
		Categories: category.NewHandler(categories, e.log),
		Products:   product.NewHandler(products, e.log),
		Uploads:    upload.NewHandler(upload.NewGateway(backend, e.cfg.Upload.Folder, e.cfg.Upload.MaxBytes), e.log),
		Contact:    contact.NewHandler(contact.NewPostgresRepository(e.db), e.log),
		Chat:       chat.NewHandler(chat.NewService(chat.NewPostgresRepository(e.db), nil), e.log),
		UploadDir:  uploadDir,
		BodyLimit:  int(e.cfg.Upload.MaxBytes) + 1<<20,
		Log:        e.log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.log.Info(gctx, "listening", "port", e.cfg.Port)
		return app.Listen(":" + e.cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		e.log.Info(sctx, "shutting down")
		return app.ShutdownWithContext(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newUploader returns the configured asset store. For the local backend it
// also returns the directory the server should expose.
func newUploader(ctx context.Context, cfg config.UploadConfig) (upload.Uploader, string, error) {
	if cfg.Backend == "s3" {
		opts := upload.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
		}
		client, err := upload.NewS3Client(ctx, opts)
		if err != nil {
			return nil, "", err
		}
		return upload.NewS3Uploader(client, opts), "", nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, "", err
	}
	return upload.NewLocalUploader(cfg.Dir, cfg.PublicBaseURL), cfg.Dir, nil
}

