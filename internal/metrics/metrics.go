package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter conta as requisições HTTP.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram mede a duração em segundos.
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// CampaignDeliveries conta cada tentativa (destinatário, canal) de campanha.
	CampaignDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_campaign_deliveries_total",
			Help: "Campaign deliveries by channel and status (sent, failed)",
		},
		[]string{"channel", "status"},
	)

	// CampaignOutcomes conta campanhas pelo resultado agregado.
	CampaignOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_campaign_outcomes_total",
			Help: "Campaign batches by outcome (success, partial, failure)",
		},
		[]string{"outcome"},
	)

	// CartCheckouts conta tentativas de checkout por resultado.
	CartCheckouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_cart_checkouts_total",
			Help: "Storefront checkouts by result",
		},
		[]string{"result"},
	)

	registerOnce sync.Once
)

// Register registra os coletores uma única vez no registry padrão.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDurationHistogram,
			CampaignDeliveries,
			CampaignOutcomes,
			CartCheckouts,
		)
	})
}

// HTTPMetrics registra as métricas HTTP de um serviço.
type HTTPMetrics struct {
	ServiceName string
}

func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	Register()
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware atualiza contadores e latência ao fim de cada requisição.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		RequestCounter.WithLabelValues(m.ServiceName, method, path, status).Inc()
		RequestDurationHistogram.WithLabelValues(m.ServiceName, method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// Handler expõe o registry do Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
