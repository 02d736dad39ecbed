package images

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func mockedFetcher(t *testing.T) *HTTPFetcher {
	t.Helper()
	f := NewHTTPFetcher(5 * time.Second)
	httpmock.ActivateNonDefault(f.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return f
}

func TestProbeReturnsContentLength(t *testing.T) {
	f := mockedFetcher(t)
	httpmock.RegisterResponder(http.MethodHead, "https://img.example.com/a.jpg",
		func(*http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(200, "")
			resp.ContentLength = 4096
			return resp, nil
		})

	size, err := f.Probe(context.Background(), "https://img.example.com/a.jpg")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if size != 4096 {
		t.Errorf("size = %d, want 4096", size)
	}
}

func TestProbeRejectsUnknownLength(t *testing.T) {
	f := mockedFetcher(t)
	httpmock.RegisterResponder(http.MethodHead, "https://img.example.com/a.jpg",
		func(*http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(200, "")
			resp.ContentLength = -1
			return resp, nil
		})

	if _, err := f.Probe(context.Background(), "https://img.example.com/a.jpg"); err == nil {
		t.Error("expected error for missing content length")
	}
}

func TestProbeRejectsBadStatus(t *testing.T) {
	f := mockedFetcher(t)
	httpmock.RegisterResponder(http.MethodHead, "https://img.example.com/a.jpg",
		httpmock.NewStringResponder(404, ""))

	if _, err := f.Probe(context.Background(), "https://img.example.com/a.jpg"); err == nil {
		t.Error("expected error for 404 probe")
	}
}

func TestGetReturnsBody(t *testing.T) {
	f := mockedFetcher(t)
	httpmock.RegisterResponder(http.MethodGet, "https://img.example.com/a.jpg",
		httpmock.NewBytesResponder(200, []byte("jpegbytes")))

	data, err := f.Get(context.Background(), "https://img.example.com/a.jpg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Errorf("unexpected body: %q", data)
	}
}

func TestGetRejectsBadStatus(t *testing.T) {
	f := mockedFetcher(t)
	httpmock.RegisterResponder(http.MethodGet, "https://img.example.com/a.jpg",
		httpmock.NewStringResponder(500, "sad"))

	if _, err := f.Get(context.Background(), "https://img.example.com/a.jpg"); err == nil {
		t.Error("expected error for 500 response")
	}
}
