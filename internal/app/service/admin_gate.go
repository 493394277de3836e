package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/storefront/internal/domain"
)

// DefaultAdminCredential is provisioned the first time the admin panel is opened
const DefaultAdminCredential = "SHOP"

// AdminGate guards the admin panel with the single shared credential. It is a
// casual-access deterrent: the credential is stored and compared in plain text.
type AdminGate struct {
	repo              domain.CredentialRepository
	defaultCredential string
	tracer            trace.Tracer
	logger            *slog.Logger
}

// NewAdminGate creates the gate. An empty defaultCredential falls back to
// DefaultAdminCredential.
func NewAdminGate(repo domain.CredentialRepository, defaultCredential string, tracer trace.Tracer, logger *slog.Logger) *AdminGate {
	if defaultCredential == "" {
		defaultCredential = DefaultAdminCredential
	}
	return &AdminGate{
		repo:              repo,
		defaultCredential: defaultCredential,
		tracer:            tracer,
		logger:            logger,
	}
}

// EnsureCredential provisions the default credential when none is stored. An
// empty stored value counts as unset.
// bootstrapped is true only on the call that stored it, in which case the
// credential should be shown to the operator once. A non-empty credential is
// never overwritten.
func (g *AdminGate) EnsureCredential(ctx context.Context) (credential string, bootstrapped bool, err error) {
	ctx, span := g.tracer.Start(ctx, "AdminGate.EnsureCredential")
	defer span.End()

	stored, ok, err := g.repo.GetAdminCredential(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read credential")
		return "", false, err
	}
	if ok && stored != "" {
		return stored, false, nil
	}

	if err := g.repo.SetAdminCredential(ctx, g.defaultCredential); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store credential")
		return "", false, err
	}

	span.SetAttributes(attribute.Bool("credential.bootstrapped", true))
	g.logger.WarnContext(ctx, "Admin credential was not set, default credential provisioned")
	return g.defaultCredential, true, nil
}

// Authenticate compares password with the stored credential for exact equality
func (g *AdminGate) Authenticate(ctx context.Context, password string) error {
	ctx, span := g.tracer.Start(ctx, "AdminGate.Authenticate")
	defer span.End()

	stored, ok, err := g.repo.GetAdminCredential(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read credential")
		return err
	}

	if !ok || stored == "" || password != stored {
		span.SetStatus(codes.Error, "Incorrect password")
		g.logger.WarnContext(ctx, "Admin login rejected")
		return domain.ErrInvalidCredential
	}

	span.SetStatus(codes.Ok, "Authenticated")
	g.logger.InfoContext(ctx, "Admin authenticated")
	return nil
}

// RotateCredential replaces the stored credential
func (g *AdminGate) RotateCredential(ctx context.Context, credential string) error {
	ctx, span := g.tracer.Start(ctx, "AdminGate.RotateCredential")
	defer span.End()

	if credential == "" {
		return domain.ErrEmptyCredential
	}

	if err := g.repo.SetAdminCredential(ctx, credential); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store credential")
		return err
	}

	g.logger.InfoContext(ctx, "Admin credential rotated")
	span.SetStatus(codes.Ok, "Credential rotated")
	return nil
}
