package monitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestFromHeading(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Releases</title></head>
<body><h1 class="d-inline mr-3">1.6.1</h1></body></html>`)
	})

	v, url, err := NewReleaseMonitorAt(srv.URL, srv.Client()).Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if v != "v1.6.1" {
		t.Errorf("version = %q, want v1.6.1", v)
	}
	if url != srv.URL {
		t.Errorf("url = %q, want %q", url, srv.URL)
	}
}

func TestLatestFollowsTagRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/releases/tag/1.7.0", http.StatusFound)
	})
	mux.HandleFunc("/releases/tag/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>no heading here</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	v, url, err := NewReleaseMonitorAt(srv.URL+"/releases/latest", srv.Client()).Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if v != "v1.7.0" {
		t.Errorf("version = %q, want v1.7.0", v)
	}
	if !strings.HasSuffix(url, "/releases/tag/1.7.0") {
		t.Errorf("url = %q", url)
	}
}

func TestLatestFromTagLink(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>meson</title></head><body>
<a href="/mesonbuild/meson/releases/tag/1.5.2">Latest</a></body></html>`)
	})

	v, _, err := NewReleaseMonitorAt(srv.URL, srv.Client()).Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if v != "v1.5.2" {
		t.Errorf("version = %q, want v1.5.2", v)
	}
}

func TestLatestErrors(t *testing.T) {
	notFound := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if _, _, err := NewReleaseMonitorAt(notFound.URL, notFound.Client()).Latest(context.Background()); err == nil {
		t.Error("expected error for 404")
	}

	empty := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing</p></body></html>`)
	})
	if _, _, err := NewReleaseMonitorAt(empty.URL, empty.Client()).Latest(context.Background()); err == nil {
		t.Error("expected error when no version is present")
	}
}

func TestCheck(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<h1>1.6.1</h1>`)
	})
	m := NewReleaseMonitorAt(srv.URL, srv.Client())

	tests := []struct {
		installed  string
		wantUpdate bool
	}{
		{"1.3.2\n", true},
		{"1.6.1\n", false},
		{"1.7.0\n", false},
	}
	for _, tt := range tests {
		info, err := m.Check(context.Background(), tt.installed)
		if err != nil {
			t.Fatalf("Check(%q) error = %v", tt.installed, err)
		}
		if info.HasUpdate != tt.wantUpdate {
			t.Errorf("Check(%q).HasUpdate = %v, want %v", tt.installed, info.HasUpdate, tt.wantUpdate)
		}
		if info.Description() == "" {
			t.Error("Description() should not be empty")
		}
	}

	if _, err := m.Check(context.Background(), "garbage"); err == nil {
		t.Error("expected error for unparsable installed version")
	}
}
