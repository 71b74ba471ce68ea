package cyclorama

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal holds the prometheus collectors on a private registry,
// so tests can build as many as they like without colliding
type StatsInternal struct {
	Registry *prometheus.Registry

	SlideChanges prometheus.Counter
	NavDropped   *prometheus.CounterVec
	Tweens       *prometheus.CounterVec
	FrameTimer   prometheus.Histogram
	WWWRequests  *prometheus.CounterVec
	ActivePeriod prometheus.Gauge

	JournalDropped prometheus.Counter
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()

	s := &StatsInternal{
		Registry: reg,
		SlideChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cyclorama",
			Name:      "slide_changes_total",
			Help:      "Settled changes of the active period",
		}),
		NavDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclorama",
			Name:      "navigation_dropped_total",
			Help:      "Prev/next requests dropped while a transition was in flight",
		}, []string{"direction"}),
		Tweens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclorama",
			Name:      "tweens_issued_total",
			Help:      "Tween commands issued, by property and whether they replaced one in flight",
		}, []string{"property", "retarget"}),
		FrameTimer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cyclorama",
			Name:      "frame_seconds",
			Help:      "Time spent ticking and drawing one frame",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066},
		}),
		WWWRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclorama",
			Name:      "www_requests_total",
			Help:      "HTTP API requests by status code and method",
		}, []string{"code", "method"}),
		ActivePeriod: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cyclorama",
			Name:      "active_period",
			Help:      "0-based index of the active period",
		}),
		JournalDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cyclorama",
			Name:      "journal_dropped_total",
			Help:      "Tween commands dropped because the output journal was behind",
		}),
	}

	reg.MustRegister(
		s.SlideChanges,
		s.NavDropped,
		s.Tweens,
		s.FrameTimer,
		s.WWWRequests,
		s.ActivePeriod,
		s.JournalDropped,
		prometheus.NewGoCollector(),
	)
	return s
}

func (s *StatsInternal) RecSlide(index int) {
	s.SlideChanges.Inc()
	s.ActivePeriod.Set(float64(index))
}

func (s *StatsInternal) RecDropped(direction string) {
	s.NavDropped.WithLabelValues(direction).Inc()
}

func (s *StatsInternal) RecTween(property string, retarget bool) {
	s.Tweens.WithLabelValues(property, strconv.FormatBool(retarget)).Inc()
}

func (s *StatsInternal) RecFrameTimer(d time.Duration) {
	s.FrameTimer.Observe(d.Seconds())
}

func (s *StatsInternal) RecJournalDropped() {
	s.JournalDropped.Inc()
}

func (s *StatsInternal) RecWWW(code, method string) {
	s.WWWRequests.WithLabelValues(code, method).Inc()
}

// Handler serves this registry only
func (s *StatsInternal) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry})
}
