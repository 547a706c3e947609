package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/dsfile/internal/config"
	"github.com/alexisbeaulieu97/dsfile/internal/logger"
	"github.com/alexisbeaulieu97/dsfile/internal/model"
	"github.com/alexisbeaulieu97/dsfile/internal/reconciler"
	"github.com/alexisbeaulieu97/dsfile/internal/vsphere"
)

// passwordEnv is consulted when no --password flag is given, so credentials
// can stay out of shell history and process listings.
const passwordEnv = "DSFILE_PASSWORD"

type applyOptions struct {
	ProfilePath    string
	Params         config.Params
	Insecure       bool
	JSONOutput     bool
	Check          bool
	Verbose        bool
	NonInteractive bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Converge a datastore path to the desired state",
		Long: `Converge a single file path on a vCenter datastore to the desired state.

The path is probed over the datastore's HTTPS file endpoint, then at most one
corrective action is applied: delete (absent), create directory (directory),
or create an empty file (touch). state=file only reports metadata of an
existing file.

Note that the vSphere folder API cannot remove directories; state=absent only
ever removes files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Check = root.check
			opts.Verbose = root.verbose
			opts.NonInteractive = !term.IsTerminal(int(os.Stdout.Fd()))

			if cmd.Flags().Changed("insecure") {
				validate := !opts.Insecure
				opts.Params.ValidateCerts = &validate
			}
			if opts.Params.Password == "" {
				opts.Params.Password = os.Getenv(passwordEnv)
			}

			if err := validateApplyOptions(opts); err != nil {
				return err
			}

			return applyCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ProfilePath, "profile", "c", "", "Path to a YAML connection profile")
	cmd.Flags().StringVar(&opts.Params.Host, "host", "", "vCenter server the datastore is available on")
	cmd.Flags().StringVarP(&opts.Params.Username, "username", "u", "", "User name to authenticate with")
	cmd.Flags().StringVar(&opts.Params.Password, "password", "", "Password to authenticate with (or "+passwordEnv+")")
	cmd.Flags().StringVar(&opts.Params.Datacenter, "datacenter", "", "Datacenter holding the datastore")
	cmd.Flags().StringVar(&opts.Params.Datastore, "datastore", "", "Datastore holding the path")
	cmd.Flags().StringVar(&opts.Params.Path, "path", "", "File or directory path on the datastore")
	cmd.Flags().StringVar(&opts.Params.State, "state", "", "Desired state: absent, directory, file or touch (default file)")
	cmd.Flags().IntVar(&opts.Params.TimeoutSeconds, "timeout", 0, "Timeout in seconds per HTTP call (default 10)")
	cmd.Flags().BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate validation (use only as last resort)")
	cmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "Emit the result as JSON")

	return cmd
}

func runApply(cmd *cobra.Command, opts applyOptions) error {
	params := opts.Params

	if opts.ProfilePath != "" {
		profile, err := config.LoadProfile(opts.ProfilePath)
		if err != nil {
			return err
		}
		profile.Merge(&params)
	}

	params.ApplyDefaults()
	if err := config.ValidateParams(&params); err != nil {
		return err
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.NonInteractive})
	if err != nil {
		return err
	}
	log = log.WithFields(map[string]any{
		"host":      params.Host,
		"datastore": params.Datastore,
		"path":      params.Path,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	endpoint := vsphere.NewFileClient(vsphere.FileClientOptions{
		Username:      params.Username,
		Password:      params.Password,
		Timeout:       params.Timeout(),
		ValidateCerts: params.CertsValidated(),
	})

	state := params.DesiredState()

	// The management API is only needed for deletes and directory creation,
	// and never in check mode.
	var files reconciler.FileManager
	if !opts.Check && (state == model.StateAbsent || state == model.StateDirectory) {
		loginCtx, loginCancel := context.WithTimeout(ctx, params.Timeout())
		session, err := vsphere.NewSession(loginCtx, vsphere.SessionOptions{
			Host:       params.Host,
			Username:   params.Username,
			Password:   params.Password,
			Datacenter: params.Datacenter,
			Insecure:   !params.CertsValidated(),
		})
		loginCancel()
		if err != nil {
			return err
		}
		defer session.Logout(ctx)
		files = session
	}

	rec := reconciler.New(endpoint, files, log)
	res, err := rec.Run(ctx, reconciler.Request{
		Host:       params.Host,
		Datacenter: params.Datacenter,
		Datastore:  params.Datastore,
		Path:       params.Path,
		State:      state,
		CheckMode:  opts.Check,
	})
	if err != nil {
		writeFailure(cmd.OutOrStdout(), failureFrom(err, res), opts.JSONOutput || opts.NonInteractive)
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, opts.JSONOutput || opts.NonInteractive)
}
