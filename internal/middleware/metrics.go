package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pulse_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// OTPIssued counts verification codes issued, labeled by purpose
// (signup, resend, password_reset).
var OTPIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pulse_otp_issued_total",
	Help: "Total number of one-time verification codes issued",
}, []string{"purpose"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
