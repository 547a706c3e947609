package vsphere

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

func newTestClient() *FileClient {
	return NewFileClient(FileClientOptions{
		Username:      "user",
		Password:      "pass",
		Timeout:       5 * time.Second,
		ValidateCerts: true,
	})
}

func TestStatFound(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		user, pass, ok := r.BasicAuth()
		gotAuth = ok && user == "user" && pass == "pass"
		w.Header().Set("Content-Length", "1024")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	probe, err := newTestClient().Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")
	require.NoError(t, err)

	require.Equal(t, http.MethodHead, gotMethod)
	require.True(t, gotAuth, "request must carry basic auth")
	require.Equal(t, model.ProbeFound, probe.State)
	require.True(t, probe.Exists())
	require.Equal(t, int64(1024), probe.Size)
	require.Equal(t, http.StatusOK, probe.Status)
}

func TestStatAbsent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	probe, err := newTestClient().Stat(context.Background(), srv.URL+"/folder/missing?dsName=ds1")
	require.NoError(t, err)

	require.Equal(t, model.ProbeAbsent, probe.State)
	require.False(t, probe.Exists())
	require.Equal(t, http.StatusNotFound, probe.Status)
}

func TestStatMissingContentLength(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Write a raw 200 without a Content-Length header; the server would
		// otherwise add an implicit one.
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()
		buf.WriteString("HTTP/1.1 200 OK\r\nConnection: close\r\n\r\n")
		buf.Flush()
	}))
	defer srv.Close()

	_, err := newTestClient().Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")
	require.ErrorIs(t, err, &dserrors.MalformedResponseError{})
}

func TestStatUnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fault", "ServerFaultCode")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient().Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")

	var probeErr *dserrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.Equal(t, http.StatusInternalServerError, probeErr.Status)
	require.Equal(t, "Internal Server Error", probeErr.Reason)
	require.Equal(t, "ServerFaultCode", probeErr.Headers.Get("X-Fault"))
}

func TestStatTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient().Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")
	require.ErrorIs(t, err, &dserrors.TransportError{})
}

func TestStatRejectsUntrustedCertificate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	strict := newTestClient()
	_, err := strict.Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")
	require.ErrorIs(t, err, &dserrors.TransportError{}, "self-signed certificate must fail verification")

	relaxed := NewFileClient(FileClientOptions{
		Username:      "user",
		Password:      "pass",
		Timeout:       5 * time.Second,
		ValidateCerts: false,
	})
	probe, err := relaxed.Stat(context.Background(), srv.URL+"/folder/a?dsName=ds1")
	require.NoError(t, err)
	require.Equal(t, model.ProbeFound, probe.State)
	require.Equal(t, int64(0), probe.Size)
}

func TestTouchCreated(t *testing.T) {
	t.Parallel()

	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	status, reason, err := newTestClient().Touch(context.Background(), srv.URL+"/folder/new?dsName=ds1")
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Created", reason)
}

func TestTouchRejectsNon201(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{"200 is not success for touch", http.StatusOK},
		{"conflict", http.StatusConflict},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			status, _, err := newTestClient().Touch(context.Background(), srv.URL+"/folder/new?dsName=ds1")

			var mutErr *dserrors.MutationError
			require.ErrorAs(t, err, &mutErr)
			require.Equal(t, tt.status, status)
			require.Equal(t, "touch", mutErr.Op)
		})
	}
}

func TestTouchTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, _, err := newTestClient().Touch(context.Background(), srv.URL+"/folder/new?dsName=ds1")
	require.ErrorIs(t, err, &dserrors.TransportError{})
}
