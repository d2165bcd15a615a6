package web

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"cinematch/models"

	"github.com/rohanthewiz/rweb"
)

// startLimitedServer runs a server allowing one request per client and
// returns its base URL.
func startLimitedServer(t *testing.T, trusted []string) string {
	t.Helper()

	cfg := models.DefaultConfig()
	cfg.RateLimitPerSecond = 0.001
	cfg.RateLimitBurst = 1
	cfg.MetricsAddress = ""
	cfg.TrustedProxies = trusted

	app, err := NewApp(&cfg, models.LoadCatalog([]byte(`["Inception"]`)), nopBackend{})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(app.Close)

	readyChan := make(chan struct{}, 1)
	srv := NewTestServer(app, rweb.ServerOptions{
		ReadyChan: readyChan,
		Address:   "localhost:",
	})
	go func() {
		_ = srv.Run()
	}()

	select {
	case <-readyChan:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	return fmt.Sprintf("http://localhost:%s", srv.GetListenPort())
}

func getHealth(t *testing.T, baseURL string, headers map[string]string) int {
	t.Helper()
	req, err := http.NewRequest("GET", baseURL+"/health", http.NoBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimitUsesPeerAddress(t *testing.T) {
	baseURL := startLimitedServer(t, nil)

	if got := getHealth(t, baseURL, map[string]string{"X-Forwarded-For": "1.1.1.1"}); got != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", got)
	}
	// Forwarding headers from an untrusted peer do not buy a new bucket.
	if got := getHealth(t, baseURL, map[string]string{"X-Forwarded-For": "2.2.2.2"}); got != http.StatusTooManyRequests {
		t.Errorf("expected spoofed header to be ignored, got %d", got)
	}
	if got := getHealth(t, baseURL, map[string]string{"X-Real-IP": "3.3.3.3"}); got != http.StatusTooManyRequests {
		t.Errorf("expected X-Real-IP to be ignored, got %d", got)
	}
}

func TestRateLimitTrustedProxy(t *testing.T) {
	baseURL := startLimitedServer(t, []string{"127.0.0.1", "::1"})

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"first client", map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.1"}, http.StatusOK},
		{"second client", map[string]string{"X-Forwarded-For": "2.2.2.2"}, http.StatusOK},
		{"first client again", map[string]string{"X-Forwarded-For": "1.1.1.1"}, http.StatusTooManyRequests},
		{"real ip header", map[string]string{"X-Real-IP": "3.3.3.3"}, http.StatusOK},
		{"proxy itself", nil, http.StatusOK},
		{"proxy itself again", nil, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		if got := getHealth(t, baseURL, tt.headers); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
