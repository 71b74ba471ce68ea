package cyclorama_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	Co "github.com/maroda/cyclorama/obvy"
)

func TestStatsInternal(t *testing.T) {
	t.Run("Separate instances do not collide", func(t *testing.T) {
		a := Co.NewStatsInternal()
		b := Co.NewStatsInternal()
		a.RecSlide(1)
		if got := testutil.ToFloat64(b.SlideChanges); got != 0 {
			t.Errorf("second registry saw %f slide changes", got)
		}
	})

	t.Run("Records slides and the active period", func(t *testing.T) {
		s := Co.NewStatsInternal()
		s.RecSlide(1)
		s.RecSlide(3)
		if got := testutil.ToFloat64(s.SlideChanges); got != 2 {
			t.Errorf("got %f slide changes, want 2", got)
		}
		if got := testutil.ToFloat64(s.ActivePeriod); got != 3 {
			t.Errorf("got active period %f, want 3", got)
		}
	})

	t.Run("Labels dropped navigation by direction", func(t *testing.T) {
		s := Co.NewStatsInternal()
		s.RecDropped("next")
		s.RecDropped("next")
		s.RecDropped("prev")
		if got := testutil.ToFloat64(s.NavDropped.WithLabelValues("next")); got != 2 {
			t.Errorf("got %f dropped next, want 2", got)
		}
	})

	t.Run("Labels tweens by retarget", func(t *testing.T) {
		s := Co.NewStatsInternal()
		s.RecTween("rotation", true)
		s.RecTween("rotation", false)
		if got := testutil.ToFloat64(s.Tweens.WithLabelValues("rotation", "true")); got != 1 {
			t.Errorf("got %f retargeted rotations, want 1", got)
		}
	})

	t.Run("Handler exposes the collectors", func(t *testing.T) {
		s := Co.NewStatsInternal()
		s.RecWWW("200", http.MethodGet)
		s.RecFrameTimer(2 * time.Millisecond)

		srv := httptest.NewServer(s.Handler())
		defer srv.Close()

		resp, err := http.Get(srv.URL)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		for _, want := range []string{"cyclorama_www_requests_total", "cyclorama_frame_seconds", "cyclorama_slide_changes_total"} {
			if !strings.Contains(string(body), want) {
				t.Errorf("metrics output missing %q", want)
			}
		}
	})
}
