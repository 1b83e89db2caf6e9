package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ResultSuccess = "success"

var (
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fidelize_token_issued_total",
		Help: "Transaction tokens issued.",
	})

	TokenRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fidelize_token_redemptions_total",
		Help: "Token redemption attempts by result.",
	}, []string{"result"})

	PinValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fidelize_pin_validations_total",
		Help: "PIN validation attempts by result.",
	}, []string{"result"})

	ExpiredTokensPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fidelize_expired_tokens_purged_total",
		Help: "Expired transaction tokens deleted by the purge job.",
	})
)

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
