// Package app wires configuration into stores, gateways and services. The
// HTTP server and the hubctl CLI share it.
package app

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"pridenomad-hub/config"
	"pridenomad-hub/database"
	adminapi "pridenomad-hub/internal/api/admin"
	authapi "pridenomad-hub/internal/api/auth"
	"pridenomad-hub/internal/api/billing"
	"pridenomad-hub/internal/api/businesses"
	stripewebhooks "pridenomad-hub/internal/api/stripewebhook"
	usersapi "pridenomad-hub/internal/api/users"
	"pridenomad-hub/internal/api/webhook"
	routes "pridenomad-hub/internal/app/http"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/auth"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/infra/ghl"
	"pridenomad-hub/internal/infra/mailer"
	"pridenomad-hub/internal/infra/objectstore"
	stripepay "pridenomad-hub/internal/infra/stripe"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/services/accounts"
	"pridenomad-hub/internal/services/claims"
	"pridenomad-hub/internal/services/directory"
	"pridenomad-hub/internal/store"
	"pridenomad-hub/internal/store/firestoredb"
	"pridenomad-hub/internal/store/gormstore"
)

const sessionTTL = 24 * time.Hour

type App struct {
	cfg *config.Config
	log *logger.Logger

	Store       store.Store
	Registry    *admins.Registry
	AdminSource admins.Source

	Claims    *claims.Service
	Directory *directory.Service
	Accounts  *accounts.Service

	Tokens         *auth.Tokens
	Verifier       auth.Verifier
	IDTokens       auth.Verifier
	Google         *auth.Google
	WebhookLimiter *middleware.RateLimiter

	closers []func() error
}

// New builds every dependency named by cfg. Call Close when done.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.cfg

	var fb *firebase.App
	if cfg.Firebase.ProjectID != "" {
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		var err error
		fb, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
		if err != nil {
			return fmt.Errorf("firebase app: %w", err)
		}
	}

	if err := a.openStore(ctx, fb); err != nil {
		return err
	}

	a.Registry = admins.NewRegistry(cfg.AdminEmails...)
	a.AdminSource = admins.WithSeed(a.Store.Admins(), cfg.AdminEmails...)

	var photos directory.PhotoStore
	if cfg.Firebase.StorageBucket != "" {
		gcs, err := objectstore.NewGCS(ctx, cfg.Firebase.StorageBucket)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, gcs.Close)
		photos = gcs
	}

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	a.Tokens = auth.NewTokens(cfg.JWTSecret, sessionTTL)
	verifiers := auth.Chain{a.Tokens}
	var idTokens auth.Chain
	if fb != nil {
		client, err := fb.Auth(ctx)
		if err != nil {
			return fmt.Errorf("firebase auth: %w", err)
		}
		verifiers = append(verifiers, auth.NewFirebase(client))
		idTokens = append(idTokens, auth.NewFirebase(client))
	}
	if cfg.GoogleEnabled() {
		g, err := auth.NewGoogle(ctx, auth.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		})
		if err != nil {
			return fmt.Errorf("google sign-in: %w", err)
		}
		a.Google = g
		idTokens = append(idTokens, g)
	}
	a.Verifier = verifiers
	if len(idTokens) > 0 {
		a.IDTokens = idTokens
	}

	a.Claims = claims.NewService(a.Store, a.gateway(), mail, a.log)
	a.Directory = directory.NewService(a.Store, photos, a.log)
	a.Accounts = accounts.NewService(a.Store, a.Tokens, a.Registry, a.log)
	a.WebhookLimiter = middleware.NewRateLimiter(cfg.WebhookRatePerSecond, cfg.WebhookBurst)
	return nil
}

func (a *App) openStore(ctx context.Context, fb *firebase.App) error {
	switch a.cfg.DBDriver {
	case "firestore":
		if fb == nil {
			return fmt.Errorf("firestore driver needs FIREBASE_PROJECT_ID")
		}
		client, err := fb.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("firestore: %w", err)
		}
		a.Store = firestoredb.New(client)
	default:
		db, err := database.Open(a.cfg.DBURL, a.cfg.Env == "development")
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		a.Store = gormstore.New(db, gormstore.WithAdminPollInterval(a.cfg.AdminRefresh))
	}
	a.closers = append(a.closers, a.Store.Close)
	return nil
}

func (a *App) gateway() claims.Gateway {
	if a.cfg.PaymentProvider == "stripe" {
		return stripepay.New(stripepay.Config{
			SecretKey:  a.cfg.Stripe.SecretKey,
			PriceIDs:   a.cfg.Stripe.PriceIDs,
			SuccessURL: a.cfg.AppURL + "/payment-success",
			CancelURL:  a.cfg.AppURL + "/pricing",
		})
	}
	return ghl.New(ghl.Config{
		PaymentURL:  a.cfg.GHL.PaymentURL,
		LocationID:  a.cfg.GHL.LocationID,
		FormID:      a.cfg.GHL.FormID,
		RedirectURL: a.cfg.GHL.RedirectURL,
	})
}

// Handlers builds the HTTP handler set.
func (a *App) Handlers() routes.Handlers {
	h := routes.Handlers{
		Authenticator:  middleware.NewAuthenticator(a.Verifier, a.Accounts, a.Registry),
		WebhookLimiter: a.WebhookLimiter,
		Webhook:        webhook.NewHandler(a.Claims, a.log),
		Users:          usersapi.NewHandler(a.Accounts),
		Billing:        billing.NewHandler(a.Claims, a.Directory, a.Accounts),
		Businesses:     businesses.NewHandler(a.Directory),
		Admin:          adminapi.NewHandler(a.Claims, a.Directory, a.Store.Payments(), a.Store.Admins(), a.Registry),
	}

	opts := authapi.Options{
		FrontendRedirect: a.cfg.Google.FrontendRedirect,
		SecureCookies:    a.cfg.Env == "production",
	}
	if a.Google != nil {
		opts.Google = a.Google
	}
	if a.IDTokens != nil {
		opts.IDTokens = a.IDTokens
	}
	h.Auth = authapi.NewHandler(a.Accounts, opts)

	if a.cfg.PaymentProvider == "stripe" {
		h.Stripe = stripewebhooks.NewHandler(a.Claims, a.cfg.Stripe.WebhookSecret, a.log)
	}
	return h
}

// PurgeStaleClaims drops pending claims older than ttl.
func (a *App) PurgeStaleClaims(ctx context.Context, ttl time.Duration) {
	n, err := a.Claims.PurgeStale(ctx, ttl)
	if err != nil {
		a.log.WithError(err).Error("purge stale claims failed")
		return
	}
	a.log.With("count", n).Debug("stale claim sweep done")
}

func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
