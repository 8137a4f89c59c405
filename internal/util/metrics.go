package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed through checkout",
	})

	CheckoutRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Total number of rejected checkout attempts",
	}, []string{"reason"})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status transitions",
	}, []string{"to"})

	CouponRedemptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Total number of coupons redeemed on placed orders",
	})

	CouponRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_rejections_total",
		Help: "Total number of rejected coupon validations",
	}, []string{"reason"})

	DeliveryQuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_quotes_total",
		Help: "Total number of delivery fee quotes",
	})

	DeliveryNotServiceableTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_not_serviceable_total",
		Help: "Total number of quotes outside every delivery zone",
	})

	StoreOpenGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "store_open",
		Help: "1 when the store is accepting orders, 0 otherwise",
	})

	KitchenBacklogGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kitchen_backlog",
		Help: "Number of orders currently pending or preparing",
	})

	KitchenLateOrdersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kitchen_late_orders",
		Help: "Number of kitchen orders older than the lateness threshold",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
