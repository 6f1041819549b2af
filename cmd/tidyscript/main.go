package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sort"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/tidyscript/internal/config"
	"github.com/jeduden/tidyscript/internal/discovery"
	"github.com/jeduden/tidyscript/internal/engine"
	fixpkg "github.com/jeduden/tidyscript/internal/fix"
	"github.com/jeduden/tidyscript/internal/lint"
	"github.com/jeduden/tidyscript/internal/log"
	"github.com/jeduden/tidyscript/internal/output"
	"github.com/jeduden/tidyscript/internal/rule"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/tidyscript/internal/rules/maxparameters"
	_ "github.com/jeduden/tidyscript/internal/rules/noflagargument"
	_ "github.com/jeduden/tidyscript/internal/rules/noglobalmutation"
	_ "github.com/jeduden/tidyscript/internal/rules/nomagicnumber"
	_ "github.com/jeduden/tidyscript/internal/rules/nounusedfunction"
	_ "github.com/jeduden/tidyscript/internal/rules/novar"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: tidyscript <command> [flags] [files...]

Commands:
  check     Lint script files and Markdown code snippets (default when given file arguments)
  fix       Auto-fix lint issues in place
  init      Generate a default .tidyscript.yml config file
  rules     List built-in rules
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'tidyscript <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Handle global flags before subcommand dispatch.
	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Dispatch to subcommand.
	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "fix":
		return runFix(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "rules":
		return runRules(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "tidyscript: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("tidyscript %s\n", version)
}

// checkFlags holds the flags shared by check and fix.
type checkFlags struct {
	configPath  string
	format      string
	noColor     bool
	quiet       bool
	verbose     bool
	noGitignore bool
}

func (cf *checkFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&cf.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&cf.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&cf.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&cf.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&cf.verbose, "verbose", false, "Log progress to stderr")
	fs.BoolVar(&cf.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
}

func (cf *checkFlags) logger() *log.Logger {
	return &log.Logger{Enabled: cf.verbose, W: os.Stderr}
}

func (cf *checkFlags) formatter() output.Formatter {
	if cf.format == "json" {
		return &output.JSONFormatter{}
	}
	return &output.TextFormatter{Color: !cf.noColor}
}

// runCheck implements the "check" subcommand: lint files.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tidyscript check [flags] [files...]\n\n"+
			"Lint script files and the fenced code snippets of Markdown documents.\n\n"+
			"Files can be paths, directories (walked recursively for scripts and *.md),\n"+
			"or glob patterns. With no file arguments, reads from stdin if piped, or\n"+
			"falls back to the sources patterns from the config file.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()

	// No file args: stdin when piped, otherwise configured sources.
	if len(files) == 0 {
		if isStdinPipe() {
			return checkStdin(&cf)
		}
		return checkConfiguredSources(&cf)
	}

	return checkFiles(files, &cf)
}

// runFix implements the "fix" subcommand: auto-fix lint issues in place.
func runFix(args []string) int {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tidyscript fix [flags] [files...]\n\n"+
			"Auto-fix lint issues in script files.\n\n"+
			"Files can be paths, directories, or glob patterns. Markdown documents\n"+
			"are never rewritten. Stdin is not supported (files must be writable).\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()

	// Fix rejects stdin.
	if len(files) == 0 {
		if isStdinPipe() {
			fmt.Fprintf(os.Stderr, "tidyscript: cannot fix stdin in place\n")
			return 2
		}
		return 0
	}

	return fixFiles(files, &cf)
}

// runInit implements the "init" subcommand: generate .tidyscript.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tidyscript init\n\n"+
			"Generate a default .tidyscript.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "tidyscript: init takes no arguments\n")
		return 2
	}

	const configFile = ".tidyscript.yml"

	// Check if config file already exists.
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %s already exists\n", configFile)
		return 2
	}

	cfg := config.DumpDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "tidyscript: created %s\n", configFile)
	return 0
}

// runRules implements the "rules" subcommand: list built-in rules.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tidyscript rules\n\n"+
			"List the built-in rules with their IDs and descriptions.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	rules := rule.All()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})

	for _, r := range rules {
		fmt.Printf("%-6s %-22s %s\n", r.ID(), r.Name(), r.Description())
	}
	return 0
}

// checkFiles lints the given file paths and returns the appropriate exit code.
func checkFiles(fileArgs []string, cf *checkFlags) int {
	useGitignore := !cf.noGitignore
	opts := lint.ResolveOpts{UseGitignore: &useGitignore}
	files, err := lint.ResolveFilesWithOpts(fileArgs, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	if len(files) == 0 {
		return 0
	}

	cfg, err := loadConfig(cf.configPath, cf.logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	cf.logger().Printf("linting %d files", len(files))

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
	}

	return reportResult(runner.Run(files), cf)
}

// checkConfiguredSources discovers files via the config's sources patterns.
func checkConfiguredSources(cf *checkFlags) int {
	cfg, err := loadConfig(cf.configPath, cf.logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	if len(cfg.Sources) == 0 {
		return 0
	}

	files, err := discovery.Discover(discovery.Options{
		Patterns:     cfg.Sources,
		UseGitignore: !cf.noGitignore,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	cf.logger().Printf("sources matched %d files", len(files))

	if len(files) == 0 {
		return 0
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
	}

	return reportResult(runner.Run(files), cf)
}

// fixFiles fixes lint issues in the given file paths.
func fixFiles(fileArgs []string, cf *checkFlags) int {
	useGitignore := !cf.noGitignore
	opts := lint.ResolveOpts{UseGitignore: &useGitignore}
	files, err := lint.ResolveFilesWithOpts(fileArgs, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	if len(files) == 0 {
		return 0
	}

	cfg, err := loadConfig(cf.configPath, cf.logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	fixer := &fixpkg.Fixer{
		Config: cfg,
		Rules:  rule.All(),
	}

	fixResult := fixer.Fix(files)

	for _, m := range fixResult.Modified {
		cf.logger().Printf("fixed %s", m)
	}
	for _, e := range fixResult.Errors {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", e)
	}

	if !cf.quiet && len(fixResult.Diagnostics) > 0 {
		if err := cf.formatter().Format(os.Stderr, fixResult.Diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "tidyscript: error writing output: %v\n", err)
			return 2
		}
	}

	if len(fixResult.Errors) > 0 && len(fixResult.Diagnostics) == 0 {
		return 2
	}
	if len(fixResult.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// checkStdin reads from stdin, lints the content, and returns the appropriate
// exit code.
func checkStdin(cf *checkFlags) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: reading stdin: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(cf.configPath, cf.logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", err)
		return 2
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
	}

	return reportResult(runner.RunSource("<stdin>", source), cf)
}

// reportResult prints a run's errors and diagnostics and maps them to an
// exit code: 2 for errors without findings, 1 for findings, 0 otherwise.
func reportResult(result *engine.Result, cf *checkFlags) int {
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "tidyscript: %v\n", e)
	}

	if len(result.Errors) > 0 && len(result.Diagnostics) == 0 {
		return 2
	}

	if !cf.quiet && len(result.Diagnostics) > 0 {
		if err := cf.formatter().Format(os.Stderr, result.Diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "tidyscript: error writing output: %v\n", err)
			return 2
		}
	}

	if len(result.Diagnostics) > 0 {
		return 1
	}

	return 0
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string, logger *log.Logger) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Printf("config: %s", configPath)
		return config.Merge(defaults, loaded), nil
	}

	// Try to discover a config file.
	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	if discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	logger.Printf("config: %s", discovered)
	return config.Merge(defaults, loaded), nil
}
