package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

var (
	changedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// writeResult renders the reconciliation outcome, as JSON when requested or
// writing to a pipe, styled otherwise.
func writeResult(w io.Writer, res *model.Result, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, res)
	}

	badge := okStyle.Render("ok")
	if res.Changed {
		badge = changedStyle.Render("changed")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", badge, res.Path)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("state:"), res.State)
	if res.Size != nil {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("size:"), *res.Size)
	}
	if res.Status != 0 {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("status:"), res.Status)
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("url:"), res.URL)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeFailure renders the structured failure payload.
func writeFailure(w io.Writer, f model.Failure, jsonOutput bool) {
	if jsonOutput {
		_ = writeJSON(w, f)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", failedStyle.Render("failed"), f.Msg)
	if f.Reason != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("reason:"), f.Reason)
	}
	if f.URL != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("url:"), f.URL)
	}

	_, _ = io.WriteString(w, b.String())
}

// failureFrom assembles the failure payload from the error and whatever
// result fields had accumulated before the run aborted.
func failureFrom(err error, res *model.Result) model.Failure {
	f := model.Failure{Msg: err.Error()}
	if res != nil {
		f.Result = *res
	}

	var probeErr *dserrors.ProbeError
	if errors.As(err, &probeErr) {
		f.Status = probeErr.Status
		f.Reason = probeErr.Reason
		f.Headers = probeErr.Headers
	}

	var malformed *dserrors.MalformedResponseError
	if errors.As(err, &malformed) {
		f.Reason = malformed.Reason
	}

	var mutErr *dserrors.MutationError
	if errors.As(err, &mutErr) && mutErr.Status > 0 {
		f.Status = mutErr.Status
	}

	return f
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
