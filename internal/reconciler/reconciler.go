package reconciler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexisbeaulieu97/dsfile/internal/logger"
	"github.com/alexisbeaulieu97/dsfile/internal/model"
	"github.com/alexisbeaulieu97/dsfile/internal/vsphere"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

// Endpoint is the datastore file-transfer surface the reconciler consumes:
// the read-only existence probe and empty-file creation.
type Endpoint interface {
	Stat(ctx context.Context, url string) (*model.ProbeResult, error)
	Touch(ctx context.Context, url string) (int, string, error)
}

// FileManager is the management-API surface the reconciler consumes for
// delete and mkdir. Implementations block until the remote operation reaches
// a terminal state.
type FileManager interface {
	DeleteFile(ctx context.Context, spec string) error
	MakeDirectory(ctx context.Context, spec string) error
}

// Request describes one reconciliation: which path on which datastore, and
// the state it should converge to.
type Request struct {
	Host       string
	Datacenter string
	Datastore  string
	Path       string
	State      model.DesiredState

	// CheckMode reports the hypothetical outcome without mutating anything.
	CheckMode bool
}

// Reconciler converges a single datastore path to a desired state: probe the
// current state, compare, apply at most one corrective action, report a
// changed/unchanged result.
type Reconciler struct {
	endpoint Endpoint
	files    FileManager
	log      *logger.Logger
}

// New creates a Reconciler. files may be nil when the request can never
// reach a management-API mutation (check mode, or states served entirely by
// the file endpoint).
func New(endpoint Endpoint, files FileManager, log *logger.Logger) *Reconciler {
	return &Reconciler{endpoint: endpoint, files: files, log: log}
}

// Run executes the reconciliation and returns the result. On failure the
// returned result carries whatever fields had accumulated so far.
func (r *Reconciler) Run(ctx context.Context, req Request) (*model.Result, error) {
	res := &model.Result{
		Path:  req.Path,
		State: req.State.String(),
		URL:   vsphere.FileURL(req.Host, req.Datastore, req.Datacenter, req.Path),
	}

	eval, err := r.Evaluate(ctx, req, res)
	if err != nil {
		return res, err
	}

	r.log.WithFields(map[string]any{
		"path":            req.Path,
		"state":           req.State.String(),
		"current":         string(eval.CurrentState),
		"requires_action": eval.RequiresAction,
	}).Debug(eval.Message)

	if !eval.RequiresAction {
		return res, nil
	}

	if req.CheckMode {
		r.reportHypothetical(req, res)
		return res, nil
	}

	if err := r.Apply(ctx, eval, req, res); err != nil {
		return res, err
	}

	res.Changed = true
	return res, nil
}

// Evaluate performs the read-only assessment of the path against the desired
// state. It issues exactly one HEAD probe and never mutates anything. The
// passed result accumulates probe metadata.
func (r *Reconciler) Evaluate(ctx context.Context, req Request, res *model.Result) (*model.EvaluationResult, error) {
	probe, err := r.endpoint.Stat(ctx, res.URL)
	if err != nil {
		return nil, err
	}

	if probe.Exists() {
		res.SetSize(probe.Size)
	}

	switch req.State {
	case model.StateAbsent:
		if probe.Exists() {
			return &model.EvaluationResult{
				CurrentState:   model.StatusDrifted,
				RequiresAction: true,
				Message:        fmt.Sprintf("path '%s' exists and must be removed", req.Path),
				Probe:          *probe,
			}, nil
		}
		return &model.EvaluationResult{
			CurrentState: model.StatusSatisfied,
			Message:      fmt.Sprintf("path '%s' is already absent", req.Path),
			Probe:        *probe,
		}, nil

	case model.StateDirectory:
		if probe.Exists() {
			return &model.EvaluationResult{
				CurrentState: model.StatusSatisfied,
				Message:      fmt.Sprintf("path '%s' already exists", req.Path),
				Probe:        *probe,
			}, nil
		}
		return &model.EvaluationResult{
			CurrentState:   model.StatusMissing,
			RequiresAction: true,
			Message:        fmt.Sprintf("directory '%s' must be created", req.Path),
			Probe:          *probe,
		}, nil

	case model.StateFile:
		if !probe.Exists() {
			res.State = model.StateAbsent.String()
			res.Status = probe.Status
			return nil, dserrors.NewNotFoundError(req.Path)
		}
		res.Status = probe.Status
		return &model.EvaluationResult{
			CurrentState: model.StatusSatisfied,
			Message:      fmt.Sprintf("file '%s' exists", req.Path),
			Probe:        *probe,
		}, nil

	case model.StateTouch:
		if probe.Exists() {
			// An existing path satisfies touch; report it as a file.
			res.State = model.StateFile.String()
			return &model.EvaluationResult{
				CurrentState: model.StatusSatisfied,
				Message:      fmt.Sprintf("path '%s' already exists", req.Path),
				Probe:        *probe,
			}, nil
		}
		return &model.EvaluationResult{
			CurrentState:   model.StatusMissing,
			RequiresAction: true,
			Message:        fmt.Sprintf("file '%s' must be created", req.Path),
			Probe:          *probe,
		}, nil

	default:
		return nil, dserrors.NewValidationError("state", fmt.Sprintf("unsupported state %q", req.State), nil)
	}
}

// Apply performs the single corrective action the evaluation called for. It
// is only invoked when RequiresAction is true and check mode is off.
func (r *Reconciler) Apply(ctx context.Context, eval *model.EvaluationResult, req Request, res *model.Result) error {
	spec := vsphere.FileSpec(req.Datastore, req.Path)

	switch req.State {
	case model.StateAbsent:
		return r.files.DeleteFile(ctx, spec)

	case model.StateDirectory:
		return r.files.MakeDirectory(ctx, spec)

	case model.StateTouch:
		status, reason, err := r.endpoint.Touch(ctx, res.URL)
		res.Status = status
		res.Reason = reason
		if err != nil {
			return err
		}
		res.SetSize(0)
		res.State = model.StateFile.String()
		return nil

	default:
		return dserrors.NewValidationError("state", fmt.Sprintf("state %q requires no action", req.State), nil)
	}
}

// reportHypothetical fills the result with the outcome the mutation would
// have produced, without contacting the remote service.
func (r *Reconciler) reportHypothetical(req Request, res *model.Result) {
	res.Changed = true
	if req.State == model.StateTouch {
		res.Status = http.StatusCreated
		res.Reason = "Created"
		res.SetSize(0)
		res.State = model.StateFile.String()
	}
}
