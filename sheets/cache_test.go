package sheets

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, "payload "+r.Method)
	}))
	defer server.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}

	get := func() string {
		t.Helper()
		resp, err := client.Get(server.URL + "/v4/spreadsheets/x")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}

	if got := get(); got != "payload GET" {
		t.Errorf("first GET = %q", got)
	}
	if got := get(); got != "payload GET" {
		t.Errorf("cached GET = %q", got)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d after two GET, want 1", hits.Load())
	}

	for range 2 {
		resp, err := client.Post(server.URL+"/token", "text/plain", strings.NewReader("x"))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d after two POST, want 3 (POST are never cached)", hits.Load())
	}
}
