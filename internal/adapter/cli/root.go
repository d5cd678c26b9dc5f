package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matynz/danger/internal/domain"
	"github.com/matynz/danger/internal/usecase/report"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Publisher defines the dependency required to run the report command.
type Publisher interface {
	Publish(ctx context.Context, target report.Target, findings domain.Findings, dangerID string) error
}

// BranchPinner pins local review branches for diff tooling.
type BranchPinner interface {
	EnsureReviewBranches(ctx context.Context, baseSHA, headSHA string) error
}

// Arguments encapsulates IO streams injected from the host process.
type Arguments struct {
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Publisher       Publisher
	BranchPinner    BranchPinner
	Args            Arguments
	DefaultDangerID string
	Version         string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "danger",
		Short: "Reconcile code review findings onto pull requests",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	inReader := deps.Args.InReader
	if inReader == nil {
		inReader = os.Stdin
	}
	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetIn(inReader)
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reportCommand(deps.Publisher, deps.DefaultDangerID))
	root.AddCommand(localCommand(deps.BranchPinner))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func reportCommand(publisher Publisher, defaultDangerID string) *cobra.Command {
	var repoSlug string
	var pullNumber int
	var dangerID string
	var inputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Publish a run's findings to a pull request",
		Long: "Reads a findings document (errors, warnings, messages, markdown notes)\n" +
			"and reconciles it onto the pull request: one up-to-date report comment\n" +
			"and a commit status reflecting the outcome.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if publisher == nil {
				return errors.New("no API token configured (set DANGER_GITHUB_TOKEN or github.token)")
			}

			owner, repo, err := splitRepoSlug(repoSlug)
			if err != nil {
				return err
			}
			if pullNumber <= 0 {
				return errors.New("--pr must be a positive pull request number")
			}

			findings, err := readFindings(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			target := report.Target{Owner: owner, Repo: repo, PullNumber: pullNumber}
			if err := publisher.Publish(cmd.Context(), target, findings, dangerID); err != nil {
				return err
			}

			if report.IsOutputTerminal() {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ danger: results published to %s#%d\n", repoSlug, pullNumber)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "danger: results published to %s#%d\n", repoSlug, pullNumber)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoSlug, "repo", "", "Repository slug, e.g. owner/name (required)")
	cmd.Flags().IntVar(&pullNumber, "pr", 0, "Pull request number (required)")
	cmd.Flags().StringVar(&dangerID, "danger-id", defaultDangerID, "Identifier for this danger configuration")
	cmd.Flags().StringVar(&inputPath, "input", "-", "Findings JSON file, or - for stdin")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr")

	return cmd
}

func localCommand(pinner BranchPinner) *cobra.Command {
	var baseSHA string
	var headSHA string

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Pin danger_base/danger_head branches in the local clone",
		Long: "Creates or moves the danger_base and danger_head branches to the given\n" +
			"commits so diff tooling can compare the exact reviewed range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pinner == nil {
				return errors.New("no local repository configured (set git.repositoryDir)")
			}
			if baseSHA == "" || headSHA == "" {
				return errors.New("--base and --head are required")
			}
			if err := pinner.EnsureReviewBranches(cmd.Context(), baseSHA, headSHA); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pinned %s at %s and %s at %s\n",
				"danger_base", shortSHA(baseSHA), "danger_head", shortSHA(headSHA))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseSHA, "base", "", "Base commit sha (required)")
	cmd.Flags().StringVar(&headSHA, "head", "", "Head commit sha (required)")

	return cmd
}

// readFindings decodes a findings JSON document from a file or stdin.
func readFindings(path string, stdin io.Reader) (domain.Findings, error) {
	var reader io.Reader
	if path == "-" || path == "" {
		reader = stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return domain.Findings{}, fmt.Errorf("open findings file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var findings domain.Findings
	if err := json.NewDecoder(reader).Decode(&findings); err != nil {
		return domain.Findings{}, fmt.Errorf("parse findings: %w", err)
	}
	return findings, nil
}

func splitRepoSlug(slug string) (owner, repo string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q, expected owner/name", slug)
	}
	return parts[0], parts[1], nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
