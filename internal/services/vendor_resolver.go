package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/cache"
	"github.com/datafocus/go-inventory-sink/internal/common/fuzzy"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

const (
	vendorMatchCutoff = 0.8
	vendorCachePrefix = "inventory-sink:vendor"
)

type VendorResolverService interface {
	// Resolve returns the contact id of the vendor with the given name.
	Resolve(ctx context.Context, name string) (vendorID string, err error)

	// ResolveWithPolicy applies the configured vendor policy: with "skip" an unknown vendor
	// returns a skip reason instead of common.ErrVendorNotFound.
	ResolveWithPolicy(ctx context.Context, name string) (vendorID, skipReason string, err error)
}

type vendorResolver service

var _ VendorResolverService = (*vendorResolver)(nil)

func (v vendorResolver) Resolve(ctx context.Context, name string) (vendorID string, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(
			xlog.String("vendorName", name),
			xlog.String("vendorId", vendorID),
		))
	}()

	if strings.TrimSpace(name) == "" {
		return "", common.ErrEmptyVendorName
	}

	ttl := v.srv.conf.VendorCache.TTL
	if v.srv.vendorCache == nil || ttl <= 0 {
		return v.lookup(ctx, name)
	}

	return v.srv.vendorCache.GetOrSet(ctx, cache.GetOrSetOpts[string]{
		Key: cache.Key(vendorCachePrefix, v.srv.conf.Zoho.OrganizationID, strings.ToLower(strings.TrimSpace(name))),
		TTL: ttl,
		Callback: func() (string, error) {
			return v.lookup(ctx, name)
		},
	})
}

func (v vendorResolver) ResolveWithPolicy(ctx context.Context, name string) (vendorID, skipReason string, err error) {
	vendorID, err = v.Resolve(ctx, name)
	if err == nil {
		return vendorID, "", nil
	}

	if errors.Is(err, common.ErrVendorNotFound) && v.srv.conf.Sink.VendorPolicy.Effective() == config.VendorPolicySkip {
		skipReason = fmt.Sprintf("no matches found for vendor %s", name)
		xlog.Info(ctx, "[VENDOR-RESOLVER]", xlog.String("message", skipReason))
		return "", skipReason, nil
	}

	return "", "", err
}

// lookup tries an exact name search first, then fuzzy matches the vendors whose name contains it.
func (v vendorResolver) lookup(ctx context.Context, name string) (string, error) {
	contacts, err := v.srv.zohoClient.SearchVendors(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed search vendor %s: %w", name, err)
	}

	if len(contacts) > 0 && !contacts[0].ContactID.IsEmpty() {
		return contacts[0].ContactID.String(), nil
	}

	candidates, err := v.srv.zohoClient.SearchVendorsContaining(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed search vendor containing %s: %w", name, err)
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.DisplayName()
	}

	match, ok, err := fuzzy.Best(name, names, vendorMatchCutoff)
	if err != nil {
		return "", err
	}
	if !ok || candidates[match.Index].ContactID.IsEmpty() {
		return "", fmt.Errorf("%w: %s", common.ErrVendorNotFound, name)
	}

	return candidates[match.Index].ContactID.String(), nil
}
