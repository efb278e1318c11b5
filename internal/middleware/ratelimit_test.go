package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func limitedHandler(rl *RateLimiter) http.Handler {
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(h http.Handler, remoteAddr string) int {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.RemoteAddr = remoteAddr
	h.ServeHTTP(w, r)
	return w.Code
}

func TestRateLimiter_BlocksOverLimitPerIP(t *testing.T) {
	h := limitedHandler(NewRateLimiter(2, time.Minute))

	for i := 0; i < 2; i++ {
		if code := doRequest(h, "10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := doRequest(h, "10.0.0.1:1000"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 over the limit, got %d", code)
	}

	// Another IP has its own window
	if code := doRequest(h, "10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("expected 200 for a different IP, got %d", code)
	}
}

func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	h := limitedHandler(NewRateLimiter(1, 40*time.Millisecond))

	if code := doRequest(h, "10.0.0.3:1000"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := doRequest(h, "10.0.0.3:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside the window, got %d", code)
	}

	time.Sleep(50 * time.Millisecond)

	if code := doRequest(h, "10.0.0.3:1000"); code != http.StatusOK {
		t.Errorf("expected 200 after the window elapsed, got %d", code)
	}
}
