package service

import (
	"context"

	"github.com/raywall/bar-order-service/pkg/apperr"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/pkg/metrics"
	"github.com/raywall/bar-order-service/repository"
	"github.com/rs/zerolog/log"
)

// ResetService apaga os dados de um tenant. O cardápio público nunca é
// alcançado: ele vive em outra partição.
type ResetService struct {
	tenants  *repository.TenantRepository
	policy   identity.Policy
	recorder *metrics.Recorder
}

func NewResetService(tenants *repository.TenantRepository, policy identity.Policy, recorder *metrics.Recorder) *ResetService {
	return &ResetService{tenants: tenants, policy: policy, recorder: recorder}
}

// ResetOwnTenant apaga o tenant do próprio caller. Exige o grupo admin.
func (s *ResetService) ResetOwnTenant(ctx context.Context, caller identity.Claims) (int, error) {
	if !s.policy.IsAdmin(caller) {
		return 0, apperr.Forbidden("admin privileges required")
	}
	tenantID, err := identity.TenantIDFor(caller.Subject)
	if err != nil {
		return 0, err
	}
	return s.purge(ctx, caller, tenantID)
}

// ResetTenant apaga o tenant informado. Um admin só pode nomear o próprio
// tenant; qualquer outro exige o grupo platform-admin.
func (s *ResetService) ResetTenant(ctx context.Context, caller identity.Claims, rawTenantID string) (int, error) {
	isAdmin := s.policy.IsAdmin(caller)
	isPlatform := s.policy.IsPlatformAdmin(caller)
	if !isAdmin && !isPlatform {
		return 0, apperr.Forbidden("admin privileges required")
	}

	target, err := identity.NormalizeTenantID(rawTenantID)
	if err != nil {
		return 0, err
	}
	own, err := identity.TenantIDFor(caller.Subject)
	if err != nil {
		return 0, err
	}
	if target != own && !isPlatform {
		return 0, apperr.Forbidden("resetting another tenant requires platform admin privileges")
	}
	return s.purge(ctx, caller, target)
}

func (s *ResetService) purge(ctx context.Context, caller identity.Claims, tenantID string) (int, error) {
	keys, err := s.tenants.Keys(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	deleted, err := s.tenants.Purge(ctx, keys)

	logEvt := log.Ctx(ctx).Info()
	if err != nil {
		logEvt = log.Ctx(ctx).Error().Err(err)
	}
	logEvt.
		Str("tenant_id", tenantID).
		Str("caller", caller.Subject).
		Int("found", len(keys)).
		Int("deleted", deleted).
		Msg("tenant reset")

	s.recorder.Record(metrics.TenantResetDeleted, float64(deleted))
	if err != nil {
		return deleted, err
	}
	return deleted, nil
}
