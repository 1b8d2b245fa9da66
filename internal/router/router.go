package router

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/igabay/booking-api/internal/handler"
	"github.com/igabay/booking-api/internal/middleware"
)

// Handler registers its routes on a group
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// WriteHandler additionally exposes mutating routes that belong behind auth
type WriteHandler interface {
	Handler
	RegisterWriteRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	clinicH       Handler
	appointmentH  Handler
	patientH      Handler
	paymentH      Handler
	notificationH Handler
	h             *handler.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     rate.Limit
	RateBurst     int
	Timeout       time.Duration
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	clinicH Handler,
	appointmentH Handler,
	patientH Handler,
	paymentH Handler,
	notificationH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	r := &Router{
		engine:        engine,
		auth:          auth,
		clinicH:       clinicH,
		appointmentH:  appointmentH,
		patientH:      patientH,
		paymentH:      paymentH,
		notificationH: notificationH,
		h:             h,
		metrics:       routerMetricsInstance(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   float64(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

// Clinic discovery, calendars and slot availability are readable without a
// token so that patients can browse before signing in. Clinic reads get
// short-lived cache headers.
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	public := rg.Group("")
	public.Use(middleware.Cache(middleware.DefaultCacheConfig()))
	r.clinicH.RegisterRoutes(public)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	if wh, ok := r.clinicH.(WriteHandler); ok {
		wh.RegisterWriteRoutes(rg)
	}
	r.appointmentH.RegisterRoutes(rg)
	r.patientH.RegisterRoutes(rg)
	r.paymentH.RegisterRoutes(rg)
	r.notificationH.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

var (
	routerMetricsOnce sync.Once
	routerMetricsInst *routerMetrics
)

// routerMetricsInstance registers the HTTP metrics once; building more than
// one Router (tests) reuses the same collectors.
func routerMetricsInstance(prefix string) *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInst = &routerMetrics{
			requestDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name: prefix + "_request_duration_seconds",
					Help: "Duration of HTTP requests in seconds",
				},
				[]string{"method", "path", "status"},
			),
			requestTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: prefix + "_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			errorTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: prefix + "_errors_total",
					Help: "Total number of HTTP errors",
				},
				[]string{"method", "path", "type"},
			),
		}
		prometheus.MustRegister(
			routerMetricsInst.requestDuration,
			routerMetricsInst.requestTotal,
			routerMetricsInst.errorTotal,
		)
	})
	return routerMetricsInst
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
