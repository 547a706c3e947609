package config

import (
	"time"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
)

// Defaults applied when the caller leaves optional parameters unset.
const (
	DefaultTimeoutSeconds = 10
)

// Params holds everything one reconciliation needs: the vCenter endpoint,
// credentials, the addressed path, and the desired state.
type Params struct {
	Host       string `yaml:"host" validate:"required,endpoint"`
	Username   string `yaml:"username" validate:"required"`
	Password   string `yaml:"password" validate:"required"`
	Datacenter string `yaml:"datacenter" validate:"required"`
	Datastore  string `yaml:"datastore" validate:"required"`
	Path       string `yaml:"path" validate:"required"`

	// State defaults to "file" when empty.
	State string `yaml:"state,omitempty" validate:"omitempty,dsstate"`

	// TimeoutSeconds bounds each HTTP call. Defaults to 10.
	TimeoutSeconds int `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`

	// ValidateCerts defaults to true. Disabling certificate validation
	// should only happen when no other option exists.
	ValidateCerts *bool `yaml:"validate_certs,omitempty"`
}

// ApplyDefaults fills unset optional parameters with their defaults.
func (p *Params) ApplyDefaults() {
	if p.State == "" {
		p.State = model.DefaultState.String()
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if p.ValidateCerts == nil {
		v := true
		p.ValidateCerts = &v
	}
}

// DesiredState returns the requested state as the model enum.
func (p *Params) DesiredState() model.DesiredState {
	return model.DesiredState(p.State)
}

// Timeout returns the per-call timeout as a duration.
func (p *Params) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CertsValidated reports the effective TLS validation policy.
func (p *Params) CertsValidated() bool {
	return p.ValidateCerts == nil || *p.ValidateCerts
}

// Profile is a reusable connection profile loaded from YAML. It carries the
// endpoint and scoping parameters so repeated invocations only supply the
// path and state.
type Profile struct {
	Host           string `yaml:"host"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Datacenter     string `yaml:"datacenter"`
	Datastore      string `yaml:"datastore"`
	TimeoutSeconds int    `yaml:"timeout,omitempty"`
	ValidateCerts  *bool  `yaml:"validate_certs,omitempty"`
}

// Merge fills empty fields of params from the profile. Explicitly supplied
// parameters always win.
func (pr *Profile) Merge(p *Params) {
	if p.Host == "" {
		p.Host = pr.Host
	}
	if p.Username == "" {
		p.Username = pr.Username
	}
	if p.Password == "" {
		p.Password = pr.Password
	}
	if p.Datacenter == "" {
		p.Datacenter = pr.Datacenter
	}
	if p.Datastore == "" {
		p.Datastore = pr.Datastore
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = pr.TimeoutSeconds
	}
	if p.ValidateCerts == nil {
		p.ValidateCerts = pr.ValidateCerts
	}
}
