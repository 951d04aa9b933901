package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry - собственный реестр сервиса, глобальный default не используется.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearguard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Количество обработанных HTTP-запросов.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gearguard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Длительность обработки HTTP-запросов.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	apiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearguard",
			Subsystem: "remote_api",
			Name:      "calls_total",
			Help:      "Вызовы удалённого API по эндпоинтам и результату.",
		},
		[]string{"method", "endpoint", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gearguard",
			Subsystem: "remote_api",
			Name:      "call_duration_seconds",
			Help:      "Длительность вызовов удалённого API.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11),
		},
		[]string{"method", "endpoint"},
	)

	unsyncedEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gearguard",
			Subsystem: "repository",
			Name:      "unsynced_entities",
			Help:      "Сущности, изменённые только локально после ошибки API.",
		},
		[]string{"collection"},
	)

	syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearguard",
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Запуски полной синхронизации с удалённым API.",
		},
		[]string{"trigger"},
	)

	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gearguard",
			Subsystem: "websocket",
			Name:      "clients",
			Help:      "Подключённые websocket-клиенты.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		apiCalls,
		apiDuration,
		unsyncedEntities,
		syncRuns,
		wsClients,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler отдаёт метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// EchoMiddleware считает запросы по шаблону маршрута, а не по сырому пути.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordAPICall фиксирует один вызов удалённого API. outcome: ok, error, unauthorized, transport.
func RecordAPICall(method, endpoint, outcome string, duration time.Duration) {
	apiCalls.WithLabelValues(method, endpoint, outcome).Inc()
	apiDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func SetUnsynced(collection string, count int) {
	unsyncedEntities.WithLabelValues(collection).Set(float64(count))
}

func RecordSyncRun(trigger string) {
	syncRuns.WithLabelValues(trigger).Inc()
}

func WebsocketConnected()    { wsClients.Inc() }
func WebsocketDisconnected() { wsClients.Dec() }
