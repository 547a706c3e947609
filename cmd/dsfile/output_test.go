package main

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dsfile/internal/model"
	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

func TestWriteResultHuman(t *testing.T) {
	t.Parallel()

	res := &model.Result{
		Path:    "a/b",
		State:   "file",
		Status:  201,
		URL:     "https://vcenter.example.com/folder/a/b?dsName=ds1",
		Changed: true,
	}
	res.SetSize(0)

	out := new(bytes.Buffer)
	require.NoError(t, writeResult(out, res, false))

	text := out.String()
	require.Contains(t, text, "changed")
	require.Contains(t, text, "a/b")
	require.Contains(t, text, "size:")
	require.Contains(t, text, "status:")
	require.Contains(t, text, res.URL)
}

func TestWriteResultOmitsUnknownFields(t *testing.T) {
	t.Parallel()

	res := &model.Result{
		Path:  "a/b",
		State: "absent",
		URL:   "https://vcenter.example.com/folder/a/b?dsName=ds1",
	}

	out := new(bytes.Buffer)
	require.NoError(t, writeResult(out, res, false))

	text := out.String()
	require.Contains(t, text, "ok")
	require.NotContains(t, text, "size:")
	require.NotContains(t, text, "status:")
}

func TestFailureFromProbeError(t *testing.T) {
	t.Parallel()

	res := &model.Result{Path: "a/b", State: "file", URL: "https://vcenter.example.com/folder/a/b?dsName=ds1"}
	headers := http.Header{"X-Fault": []string{"ServerFaultCode"}}
	err := dserrors.NewProbeError(res.URL, 500, "Internal Server Error", headers)

	f := failureFrom(err, res)

	require.Equal(t, "a/b", f.Path)
	require.Equal(t, 500, f.Status)
	require.Equal(t, "Internal Server Error", f.Reason)
	require.Equal(t, []string{"ServerFaultCode"}, f.Headers["X-Fault"])
	require.Contains(t, f.Msg, "unexpected status 500")
}

func TestFailureFromMutationError(t *testing.T) {
	t.Parallel()

	res := &model.Result{Path: "a/b", State: "touch"}
	err := dserrors.NewMutationError("touch", "url", 200, errors.New("OK"))

	f := failureFrom(err, res)
	require.Equal(t, 200, f.Status)
	require.Contains(t, f.Msg, "touch failed")
}

func TestFailureFromPlainError(t *testing.T) {
	t.Parallel()

	f := failureFrom(errors.New("boom"), nil)
	require.Equal(t, "boom", f.Msg)
	require.Zero(t, f.Status)
}
