// Command report_export generates codes, lists drafts and exports reports
// from the command line without an MCP client.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/a3tai/mcp-report-author/internal/config"
	"github.com/a3tai/mcp-report-author/internal/editor"
	"github.com/a3tai/mcp-report-author/internal/logger"
	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/report"
)

var version = "dev" // This will be set by build flags

type options struct {
	draft    string
	input    string
	nextCode bool
	list     bool
	query    string
	formats  string
	printMD  bool
}

// flagAliases maps the short spellings accepted by this command onto the
// shared configuration flags
var flagAliases = map[string]string{
	"out":        "output",
	"logo-width": "logowidth",
	"log-level":  "loglevel",
}

func defineFlags(opts *options) func(*pflag.FlagSet) {
	return func(flags *pflag.FlagSet) {
		flags.StringVar(&opts.draft, "draft", "", "Draft to export (file name or path inside the drafts directory)")
		flags.StringVar(&opts.input, "input", "", "Report snapshot file (JSON or YAML) to export")
		flags.BoolVar(&opts.nextCode, "next-code", false, "Generate the next report code")
		flags.BoolVar(&opts.list, "list", false, "List drafts and exit")
		flags.StringVar(&opts.query, "query", "", "Fuzzy filter for --list")
		flags.StringVar(&opts.formats, "formats", "markdown,pdf,docx", "Comma separated formats to export")
		flags.BoolVar(&opts.printMD, "print", false, "Print the Markdown preview instead of exporting")
		flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
			if alias, ok := flagAliases[name]; ok {
				name = alias
			}
			return pflag.NormalizedName(name)
		})
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	cfg, _, err := config.LoadWithFlags("report_export", args, defineFlags(&opts))
	if errors.Is(err, config.ErrVersionRequested) {
		fmt.Fprintf(stdout, "report_export %s\n", version)
		return 0
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logFile, err := logger.InitLogger(cfg.LogLevel, cfg.LogFile, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer logFile.Close()

	if opts.draft != "" && opts.input != "" {
		fmt.Fprintln(stderr, "Error: --draft and --input are mutually exclusive")
		return 2
	}

	formats, err := parseFormats(opts.formats)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	svc, err := editor.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	session, err := editor.SessionFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.list {
		return listDrafts(svc, session, opts.query, stdout, stderr)
	}

	hasReport := opts.draft != "" || opts.input != ""
	switch {
	case opts.draft != "":
		if _, err := svc.LoadDraft(session, opts.draft); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	case opts.input != "":
		r, err := readSnapshot(opts.input)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		session.Report = r
	}

	if opts.nextCode {
		code, err := svc.GenerateCode(ctx, session, "")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if !hasReport {
			fmt.Fprintln(stdout, code)
			return 0
		}
	}

	if !hasReport {
		fmt.Fprintln(stderr, "Error: nothing to do; use --draft, --input, --next-code or --list")
		return 2
	}

	if opts.printMD {
		text, err := svc.Preview(session)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, text)
		return 0
	}

	result, err := svc.Export(ctx, session, formats)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, result.Summary())
	return 0
}

func listDrafts(svc *editor.Service, session *editor.Session, query string, stdout, stderr io.Writer) int {
	drafts, err := svc.ListDrafts(session, query)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, d := range drafts {
		fmt.Fprintf(stdout, "%s\t%d\t%s\n", d.Name, d.Size, d.ModifiedTime)
	}
	return 0
}

// readSnapshot loads a report from any JSON or YAML file
func readSnapshot(path string) (*report.Report, error) {
	format, err := report.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return report.Decode(data, format)
}

func parseFormats(s string) ([]render.Format, error) {
	var formats []render.Format
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no formats selected")
	}
	return formats, nil
}
