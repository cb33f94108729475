package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	companyService "github.com/ChaiWithJai/gtm-agent/internal/service/company"
)

const landingPage = `<!DOCTYPE html>
<html>
<head>
<title>Acme | Anvils and more</title>
<meta name="description" content="Anvils as a service for discerning coyotes">
</head>
<body>
<h2>Fast delivery</h2>
<h2>Contact us</h2>
<h3>Gravity tested</h3>
<h3>ok</h3>
<h2>Site navigation</h2>
</body>
</html>`

func TestResolveExtractsProductFacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(landingPage))
	}))
	defer srv.Close()

	resolver := companyService.NewWebResolver(2 * time.Second)
	got, err := resolver.Resolve(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}

	if got.Name != "Acme" {
		t.Fatalf("expected name Acme, got %q", got.Name)
	}
	if got.Description != "Anvils as a service for discerning coyotes" {
		t.Fatalf("unexpected description: %q", got.Description)
	}
	// "Contact us" and "Site navigation" are filtered, "ok" is too short.
	if len(got.Features) != 2 || got.Features[0] != "Fast delivery" || got.Features[1] != "Gravity tested" {
		t.Fatalf("unexpected features: %v", got.Features)
	}
}

func TestResolveFallsBackToOGDescription(t *testing.T) {
	page := `<html><head><title>Beta</title>
<meta property="og:description" content="og says hello"></head><body></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	resolver := companyService.NewWebResolver(2 * time.Second)
	got, err := resolver.Resolve(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if got.Description != "og says hello" {
		t.Fatalf("expected og:description fallback, got %q", got.Description)
	}
}

func TestResolveRejectsEmptyURL(t *testing.T) {
	resolver := companyService.NewWebResolver(time.Second)
	if _, err := resolver.Resolve(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestResolveNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resolver := companyService.NewWebResolver(time.Second)
	if _, err := resolver.Resolve(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestResolveTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(landingPage))
	}))
	defer srv.Close()

	resolver := companyService.NewWebResolver(50 * time.Millisecond)
	if _, err := resolver.Resolve(context.Background(), srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}
