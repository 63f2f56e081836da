package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"creditrisk/internal/adapters/gemini"
	"creditrisk/internal/platform/config"
	perr "creditrisk/internal/platform/errors"
	aisvc "creditrisk/internal/services/api/ai/service"
	"creditrisk/internal/services/api/assessment/domain"
	asssvc "creditrisk/internal/services/api/assessment/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cliEnv holds the seams commands need; tests replace openModel
type cliEnv struct {
	cfg       config.Conf
	stdin     io.Reader
	openModel func(ctx context.Context) (gen asssvc.Generator, model string, err error)
}

func defaultEnv() cliEnv {
	cfg := config.New()
	return cliEnv{
		cfg:   cfg,
		stdin: os.Stdin,
		openModel: func(ctx context.Context) (asssvc.Generator, string, error) {
			st, err := gemini.Open(ctx, gemini.ConfigFromEnv(cfg))
			if err != nil {
				return nil, "", err
			}
			return st.Caller, st.Registry.Default(), nil
		},
	}
}

func newRootCmd(env cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "creditrisk-cli",
		Short:         "Score loan applicants with the AI-augmented risk model",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(assessCmd(env))
	root.AddCommand(pingCmd(env))
	return root
}

func assessCmd(env cliEnv) *cobra.Command {
	var (
		file   string
		output string
		noAI   bool
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score one applicant read from a JSON file",
		Long: `Reads an applicant JSON document (use --file - for stdin), runs the same
scoring pipeline as POST /api/v1/assessments and prints the assessment.
Nothing is persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unknown --output %q (json or yaml)", output)
			}
			in, err := readApplicant(env, file)
			if err != nil {
				return err
			}

			opts := asssvc.OptionsFromEnv(env.cfg)
			opts.DisableAI = noAI
			var gen asssvc.Generator
			if !noAI {
				g, model, err := env.openModel(cmd.Context())
				if err != nil {
					return err
				}
				gen, opts.Model = g, model
			}

			out, err := asssvc.New(gen, opts).Assess(cmd.Context(), in)
			if err != nil {
				return describe(err)
			}
			return write(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "applicant JSON file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip the model and score with a zero adjustment")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func pingCmd(env cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [text]",
		Short: "Send a short prompt to the model to check connectivity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, model, err := env.openModel(cmd.Context())
			if err != nil {
				return err
			}
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			res, err := aisvc.New(gen, model).Ping(cmd.Context(), text)
			if err != nil {
				return describe(err)
			}
			return write(cmd.OutOrStdout(), "json", res)
		},
	}
}

func readApplicant(env cliEnv, file string) (domain.ApplicantInput, error) {
	var in domain.ApplicantInput
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(env.stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return in, fmt.Errorf("read applicant: %w", err)
	}
	// extra fields are kept as applicant context, matching the HTTP route
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decode applicant: %w", err)
	}
	return in, nil
}

// describe flattens a project error into "code: message (field)" for the terminal
func describe(err error) error {
	e, ok := perr.As(err)
	if !ok {
		return err
	}
	msg := fmt.Sprintf("%s: %s", e.Code(), err.Error())
	if e.Field() != "" {
		msg += " (" + e.Field() + ")"
	}
	return fmt.Errorf("%s", msg)
}

// write renders v as indented json or as yaml built from the json form, so field names match the API
func write(w io.Writer, format string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}
	y, err := yaml.Marshal(generic)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimRight(string(y), "\n")+"\n")
	return err
}
