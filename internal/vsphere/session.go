package vsphere

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"

	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

// SessionOptions configures a management-API session.
type SessionOptions struct {
	// Host is the vCenter endpoint. A bare host or host:port is dialed over
	// HTTPS; a full URL is used as given.
	Host       string
	Username   string
	Password   string
	Datacenter string

	// Insecure skips TLS certificate verification for the SOAP connection.
	Insecure bool
}

// Session is a short-lived connection to the vCenter management API, scoped
// to a single reconciliation. It resolves the datacenter once at login and
// exposes the two file-manager operations the reconciler needs.
type Session struct {
	client     *govmomi.Client
	finder     *find.Finder
	datacenter *object.Datacenter
	fm         *object.FileManager
}

// NewSession logs in to the vCenter SDK endpoint and resolves the configured
// datacenter. Callers must Logout when done.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	endpoint := sdkEndpoint(opts.Host)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse vCenter endpoint %q: %w", opts.Host, err)
	}
	// Credentials go through the explicit Login call below, never the URL.
	u.User = nil

	client, err := govmomi.NewClient(ctx, u, opts.Insecure)
	if err != nil {
		return nil, dserrors.NewTransportError(endpoint, err)
	}

	if err := client.Login(ctx, url.UserPassword(opts.Username, opts.Password)); err != nil {
		return nil, fmt.Errorf("login to %s: %w", endpoint, err)
	}

	finder := find.NewFinder(client.Client, true)
	datacenter, err := finder.Datacenter(ctx, opts.Datacenter)
	if err != nil {
		_ = client.Logout(ctx)
		return nil, fmt.Errorf("find datacenter %q: %w", opts.Datacenter, err)
	}
	finder.SetDatacenter(datacenter)

	return &Session{
		client:     client,
		finder:     finder,
		datacenter: datacenter,
		fm:         object.NewFileManager(client.Client),
	}, nil
}

// Logout terminates the remote session. Best effort; a failed logout only
// leaves an idle session to expire server-side.
func (s *Session) Logout(ctx context.Context) {
	_ = s.client.Logout(ctx)
}

// DeleteFile removes a datastore file addressed by a "[datastore] path"
// specifier. The server models deletion as a task; DeleteFile blocks until
// that task reaches a terminal state and surfaces task-level failure.
//
// The folder API cannot remove directories, only files.
func (s *Session) DeleteFile(ctx context.Context, spec string) error {
	task, err := s.fm.DeleteDatastoreFile(ctx, spec, s.datacenter)
	if err != nil {
		return dserrors.NewMutationError("delete", spec, 0, err)
	}

	if err := task.Wait(ctx); err != nil {
		return dserrors.NewMutationError("delete", spec, 0, err)
	}
	return nil
}

// MakeDirectory creates a datastore directory addressed by a "[datastore]
// path" specifier, including any missing parent directories. The call
// returns once the server has completed the operation.
func (s *Session) MakeDirectory(ctx context.Context, spec string) error {
	if err := s.fm.MakeDirectory(ctx, spec, s.datacenter, true); err != nil {
		return dserrors.NewMutationError("mkdir", spec, 0, err)
	}
	return nil
}

// sdkEndpoint normalizes a host into the full SDK endpoint URL.
func sdkEndpoint(host string) string {
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	if !strings.HasSuffix(host, "/sdk") {
		host = strings.TrimSuffix(host, "/") + "/sdk"
	}
	return host
}
