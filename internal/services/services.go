package services

import (
	"github.com/datafocus/go-inventory-sink/internal/common/cache"
	"github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/zoho"
	"github.com/datafocus/go-inventory-sink/internal/config"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	zohoClient  zoho.Client
	vendorCache cache.Client[string]
	metrics     metrics.Metrics

	common service

	VendorResolver *vendorResolver
	LineItem       *lineItemNormalizer
	PurchaseOrder  *purchaseOrderProcessor
	BuyOrder       *buyOrderProcessor
	AssemblyOrder  *assemblyOrderProcessor
	Sink           *sink

	Processors MapProcessor
}

// New wires every service. vendorCache may be nil, the vendor cache is then disabled.
func New(
	conf config.Config,
	zohoClient zoho.Client,
	vendorCache cache.Client[string],
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:        conf,
		zohoClient:  zohoClient,
		vendorCache: vendorCache,
		metrics:     metrics,
	}
	srv.common.srv = srv
	srv.VendorResolver = (*vendorResolver)(&srv.common)
	srv.LineItem = (*lineItemNormalizer)(&srv.common)
	srv.PurchaseOrder = (*purchaseOrderProcessor)(&srv.common)
	srv.BuyOrder = (*buyOrderProcessor)(&srv.common)
	srv.AssemblyOrder = (*assemblyOrderProcessor)(&srv.common)
	srv.Sink = (*sink)(&srv.common)

	// register all processor here
	srv.Processors = NewMapProcessor(
		srv.PurchaseOrder,
		srv.BuyOrder,
		srv.AssemblyOrder,
	)

	return srv
}
