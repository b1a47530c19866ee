package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts gateway HTTP requests by route, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pxegate_http_requests_total",
		Help: "Total number of HTTP requests served by the gateway",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration records request latency by route and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pxegate_http_request_duration_seconds",
		Help:    "Latency in seconds of HTTP requests served by the gateway",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// GatewayOperations counts gateway operations by outcome (ok/error)
var GatewayOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pxegate_gateway_operations_total",
		Help: "Total number of gateway operations by result",
	},
	[]string{"operation", "result"},
)

// PXECallDuration records latency of JSON-RPC calls to the PXE node
var PXECallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pxegate_pxe_call_duration_seconds",
		Help:    "Latency in seconds of calls to the PXE node",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method"},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(GatewayOperations, PXECallDuration)
}
