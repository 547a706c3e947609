package vsphere

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

// FileClientOptions configures access to the datastore file-transfer
// endpoint.
type FileClientOptions struct {
	Username string
	Password string

	// Timeout bounds every HTTP call. Zero means no timeout.
	Timeout time.Duration

	// ValidateCerts toggles TLS certificate verification. Disabling it is a
	// last-resort trust override, not a default.
	ValidateCerts bool
}

// FileClient talks to the datastore's HTTPS file-transfer endpoint with
// basic authentication. It covers the existence probe (HEAD) and empty-file
// creation (PUT); everything else goes through the management API.
type FileClient struct {
	client   *http.Client
	username string
	password string
}

// NewFileClient creates a FileClient from the supplied options.
func NewFileClient(opts FileClientOptions) *FileClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if !opts.ValidateCerts {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &FileClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		username: opts.Username,
		password: opts.Password,
	}
}

// Stat issues a HEAD request against the file endpoint URL and classifies
// the outcome. A 200 yields a found result with the reported size, a 404 an
// absent result; any other status or a missing content-length is fatal.
func (c *FileClient) Stat(ctx context.Context, url string) (*model.ProbeResult, error) {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if resp.ContentLength < 0 {
			return nil, dserrors.NewMalformedResponseError(url, "200 response carries no content-length header")
		}
		return &model.ProbeResult{
			State:  model.ProbeFound,
			Size:   resp.ContentLength,
			Status: resp.StatusCode,
		}, nil
	case http.StatusNotFound:
		return &model.ProbeResult{
			State:  model.ProbeAbsent,
			Status: resp.StatusCode,
		}, nil
	default:
		return nil, dserrors.NewProbeError(url, resp.StatusCode, statusReason(resp), resp.Header)
	}
}

// Touch issues a PUT with an empty body to create an empty file. The
// endpoint reports success with 201 only; any other status, including 200,
// is a failed mutation.
func (c *FileClient) Touch(ctx context.Context, url string) (int, string, error) {
	resp, err := c.do(ctx, http.MethodPut, url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	reason := statusReason(resp)
	if resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, reason, dserrors.NewMutationError("touch", url, resp.StatusCode, errors.New(reason))
	}
	return resp.StatusCode, reason, nil
}

func (c *FileClient) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, dserrors.NewTransportError(url, err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, dserrors.NewTransportError(url, err)
	}
	return resp, nil
}

// statusReason extracts the reason phrase from a response status line.
func statusReason(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	return strings.TrimPrefix(resp.Status, prefix)
}
