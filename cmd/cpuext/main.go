package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/uniqproject/cpuext"
	"go.uber.org/zap"
)

// Build metadata injected via ldflags.
// When built without ldflags (e.g., plain `go build`), these remain
// at their zero values and the version command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "cpuext",
		Short: "x86 instruction-set extension detection",
		Long: `cpuext reports the SIMD and long-mode extensions of the running processor.

It decodes CPUID leaves 1, 7 and 0x80000001 into flags for MMX, SSE through
SSE4.2, SSE4a, AVX, AVX2, XOP, FMA3, FMA4 and x64. Use it to check a host
before deploying optimized builds, or to pick the encoder build to run.`,
		SilenceUsage: true,
	}

	root.AddCommand(probeCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(buildCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// ProbeOptions defines flags for the probe subcommand.
type ProbeOptions struct {
	JSON    bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
	Raw     bool `flag:"raw" flagshort:"r" flagdescr:"Include the raw CPUID leaves"`
	Verbose bool `flag:"verbose" flagshort:"v" flagdescr:"Log each CPUID query to stderr"`
}

func (o *ProbeOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func probeCmd() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Detect all extensions and display results",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			log := newLogger(opts.Verbose)
			defer log.Sync() //nolint:errcheck

			snap := cpuext.ReadSnapshot(loggedQuery(log, cpuext.HardwareQuery))
			report := snap.Report()

			if opts.JSON {
				out := map[string]any{
					"vendor":    snap.VendorID(),
					"supported": featureStrings(report.Supported()),
					"report":    report,
				}
				if opts.Raw {
					out["cpuid"] = snap
				}
				return printJSON(out)
			}

			fmt.Printf("Vendor: %s\n\n", snap.VendorID())
			fmt.Print(report)
			if opts.Raw {
				fmt.Println()
				fmt.Print(snap)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// loggedQuery wraps q so every issued selector and its result are logged.
func loggedQuery(log *zap.Logger, q cpuext.QueryFunc) cpuext.QueryFunc {
	return func(selector uint32) cpuext.Registers {
		r := q(selector)
		log.Debug("cpuid",
			zap.String("leaf", fmt.Sprintf("%#x", selector)),
			zap.Stringer("result", r),
		)
		return r
	}
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Require featureRequirements `flag:"require" flagshort:"r" flagdescr:"Required features (see available features above)" flagrequired:"true" flagcustom:"true"`
	JSON    bool                `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineRequire(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*featureRequirements)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *CheckOptions) DecodeRequire(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseFeatureRequirements(s)
}

// CompleteRequire completes comma-separated feature identifiers.
func (o *CheckOptions) CompleteRequire(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	current := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		current = toComplete[i+1:]
	}

	selected := map[string]struct{}{}
	for _, part := range strings.Split(prefix, ",") {
		if name := strings.ToLower(strings.TrimSpace(part)); name != "" {
			selected[name] = struct{}{}
		}
	}

	var candidates []string
	for _, name := range cpuext.FeatureNames() {
		if _, ok := selected[name]; ok {
			continue
		}
		if strings.HasPrefix(name, strings.ToLower(current)) {
			candidates = append(candidates, prefix+name)
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func checkCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check specific extension requirements",
		Long:  checkLongDescription(),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(opts.Require) == 0 {
				return fmt.Errorf("no features specified")
			}

			err := cpuext.Check(opts.Require...)
			if err != nil {
				var fe *cpuext.FeatureError
				if errors.As(err, &fe) {
					if opts.JSON {
						if err := printJSON(map[string]any{
							"ok":      false,
							"feature": fe.Feature,
							"reason":  fe.Reason,
						}); err != nil {
							return err
						}
						os.Exit(1)
					}
					fmt.Fprintf(os.Stderr, "FAIL: %s: %s\n", fe.Feature, fe.Reason)
					os.Exit(1)
				}
				return err
			}

			if opts.JSON {
				return printJSON(map[string]any{"ok": true})
			}
			fmt.Println("OK: all requirements satisfied")
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// BuildOptions defines flags for the build subcommand.
type BuildOptions struct {
	Optimized  bool `flag:"optimized" flagshort:"o" flagdescr:"Allow SIMD-optimized builds"`
	Allow64Bit bool `flag:"allow-64bit" flagdescr:"Allow 64-bit builds on a 64-bit OS"`
}

func (o *BuildOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func buildCmd() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build <base>",
		Short: "Print the encoder executable best suited to this processor",
		Long: `Print the executable name of the best encoder build for this processor.

Builds are named <base>_SSE3[_64].exe, <base>_SSE2.exe, <base>_SSE.exe and
<base>.exe; the first one the processor can run is printed.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Println(cpuext.ExecutableName(args[0], cpuext.Detect(), cpuext.BuildOptions{
				Optimized: opts.Optimized,
				Use64Bit:  opts.Allow64Bit,
				OS64Bit:   cpuext.Is64BitOS(),
			}))
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show OS and tool version",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("cpuext %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("cpuext (dev)")
			}

			fmt.Printf("OS: %s\n", cpuext.OSVersion())
			fmt.Printf("64-bit OS: %v\n", cpuext.Is64BitOS())
			return nil
		},
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

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func featureStrings(features []cpuext.Feature) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, f.String())
	}
	return out
}

func availableFeatures() string {
	return strings.Join(cpuext.FeatureNames(), ", ")
}

func checkLongDescription() string {
	return fmt.Sprintf(`Check that the processor supports all required extensions.
Exits with code 0 if all requirements are met, 1 if any are missing.

Available features:
%s`, formatWrappedList(cpuext.FeatureNames(), "  ", 80))
}

func formatWrappedList(items []string, indent string, maxWidth int) string {
	if len(items) == 0 {
		return indent + "(none)"
	}

	lines := make([]string, 0, len(items))
	line := indent
	for i, item := range items {
		token := item
		if i < len(items)-1 {
			token += ", "
		}

		if len(line)+len(token) > maxWidth && line != indent {
			lines = append(lines, strings.TrimRight(line, " "))
			line = indent + token
			continue
		}

		line += token
	}

	lines = append(lines, strings.TrimRight(line, " "))
	return strings.Join(lines, "\n")
}

type featureRequirements []cpuext.Feature

func (r *featureRequirements) String() string {
	return strings.Join(featureStrings(*r), ",")
}

func (r *featureRequirements) Set(input string) error {
	features, err := parseFeatureRequirements(input)
	if err != nil {
		return err
	}

	*r = append(*r, features...)
	return nil
}

func (r *featureRequirements) Type() string {
	return "feature"
}

func parseFeatureRequirements(input string) (featureRequirements, error) {
	if strings.TrimSpace(input) == "" {
		return featureRequirements{}, nil
	}

	parts := strings.Split(input, ",")
	features := make(featureRequirements, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		feature, err := cpuext.ParseFeature(name)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, availableFeatures())
		}

		features = append(features, feature)
	}

	return features, nil
}
