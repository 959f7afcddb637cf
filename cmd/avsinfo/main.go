package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/uniqproject/cpuext/avsinfo"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd(avsinfo.Open).Execute(); err != nil {
		os.Exit(1)
	}
}

// Options defines flags for the avsinfo command.
type Options struct {
	Library string `flag:"dll" flagdescr:"Path to the AviSynth library (default: search for avisynth.dll)"`
	JSON    bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
	Verbose bool   `flag:"verbose" flagshort:"v" flagdescr:"Log runtime loading to stderr"`
}

func (o *Options) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

type openFunc func(opts ...avsinfo.Option) (avsinfo.Runtime, error)

func newRootCmd(open openFunc) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "avsinfo <script.avs>",
		Short: "Print the clip properties of an AviSynth script",
		Long: `avsinfo evaluates an AviSynth script and prints the properties of the clip
it returns: color space, resolution, frame rate, frame count, scan type and,
when present, audio sample rate, channel count and sample count.

Requires avisynth.dll (AviSynth 2.6 or AviSynth+) on Windows x64.`,
		Args: func(c *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(c, args); err != nil {
				fmt.Fprintln(c.ErrOrStderr(), `usage: avsinfo "Path to the .avs file"`)
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			log := newLogger(opts.Verbose)
			defer log.Sync() //nolint:errcheck

			err := run(c.OutOrStdout(), c.ErrOrStderr(), open, opts, log, args[0])
			if err != nil {
				fmt.Fprintln(c.ErrOrStderr(), describe(err))
			}
			return err
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func run(stdout, stderr io.Writer, open openFunc, opts *Options, log *zap.Logger, path string) error {
	if !avsinfo.IsScriptPath(path) {
		fmt.Fprintf(stderr, "warning: %s is no .avs file\n", path)
	}

	rt, err := open(avsinfo.WithLibrary(opts.Library), avsinfo.WithLogger(log))
	if err != nil {
		return err
	}
	defer rt.Close()

	info, err := avsinfo.Inspect(rt, path)
	if err != nil {
		return err
	}

	if opts.JSON {
		return avsinfo.RenderJSON(stdout, info)
	}
	return avsinfo.Render(stdout, info.Video)
}

// describe turns a failure into the message shown to the user.
func describe(err error) string {
	var se *avsinfo.ScriptError
	switch {
	case errors.As(err, &se):
		return se.Error()
	case errors.Is(err, avsinfo.ErrRuntimeNotFound):
		return fmt.Sprintf("Couldn't find avisynth.dll: %v", err)
	case errors.Is(err, avsinfo.ErrNoClip):
		return "Found no valid avisynth clip!"
	case errors.Is(err, avsinfo.ErrNoVideo):
		return "Found no video info in current script!"
	default:
		return err.Error()
	}
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
