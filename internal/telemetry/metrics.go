// Package telemetry provides Prometheus metrics for the API.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// Counters
	HTTPRequests        *prometheus.CounterVec
	SignIns             prometheus.Counter
	SignInFailures      prometheus.Counter
	MeetingsStarted     prometheus.Counter
	MeetingLinksCreated prometheus.Counter
	RoomTokensIssued    prometheus.Counter

	// Histograms (seconds)
	RequestDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{Name: "meetlite_http_requests_total", Help: "HTTP requests handled"}, []string{"method"})
		SignIns = promauto.NewCounter(prometheus.CounterOpts{Name: "meetlite_signins_total", Help: "Successful OAuth sign-ins"})
		SignInFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "meetlite_signin_failures_total", Help: "Failed OAuth sign-ins"})
		MeetingsStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "meetlite_meetings_started_total", Help: "Instant meetings started"})
		MeetingLinksCreated = promauto.NewCounter(prometheus.CounterOpts{Name: "meetlite_meeting_links_created_total", Help: "Shareable meeting links created"})
		RoomTokensIssued = promauto.NewCounter(prometheus.CounterOpts{Name: "meetlite_room_tokens_issued_total", Help: "Video room kit tokens issued"})
		RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "meetlite_request_duration_seconds", Help: "HTTP request duration seconds", Buckets: prometheus.DefBuckets})
	})
}

// Handler exposes the standard Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// CountRequest records one handled request.
func CountRequest(method string, seconds float64) {
	if HTTPRequests != nil {
		HTTPRequests.WithLabelValues(method).Inc()
	}
	if RequestDuration != nil {
		RequestDuration.Observe(seconds)
	}
}

// CountMeetingStarted records one instant meeting.
func CountMeetingStarted() {
	if MeetingsStarted != nil {
		MeetingsStarted.Inc()
	}
}

// CountMeetingLinkCreated records one create-for-later link.
func CountMeetingLinkCreated() {
	if MeetingLinksCreated != nil {
		MeetingLinksCreated.Inc()
	}
}

// CountRoomTokenIssued records one issued room credential.
func CountRoomTokenIssued() {
	if RoomTokensIssued != nil {
		RoomTokensIssued.Inc()
	}
}

// CountSignIn records a sign-in outcome.
func CountSignIn(ok bool) {
	if ok {
		if SignIns != nil {
			SignIns.Inc()
		}
		return
	}
	if SignInFailures != nil {
		SignInFailures.Inc()
	}
}
