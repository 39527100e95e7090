// Package main provides the Aurora CLI application entry point.
// Aurora is a command dispatch engine; this binary hosts it over a small
// in-memory world, interactively or from batch scripts.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aurora/internal/commands"
	"aurora/internal/config"
	"aurora/internal/logger"
	"aurora/internal/shell"
	"aurora/internal/version"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

var (
	logLevel     string
	logFile      string
	testMode     bool
	configFile   string
	manifestPath string

	execLine     string
	execFailFast bool
	detailed     bool
	listHandlers bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aurora",
	Short: "Aurora - command dispatch engine shell",
	Long: `Aurora resolves typed command lines against a declarative command tree:
permissions, per-caller cooldowns, typed arguments and tab completion.`,
	Run: runShell, // Default behavior is to run the interactive shell
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Long:  `Start the interactive Aurora shell as the configured session player.`,
	Run:   runShell,
}

// execCmd runs a batch script or a single line as the console
var execCmd = &cobra.Command{
	Use:   "exec [script.aurora]",
	Short: "Execute a script or a single command line as the console",
	Long: `Execute an .aurora script file line by line as the console caller.
Without a script the embedded demo walkthrough runs. With --line a single
command line is dispatched instead.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runExec,
}

// commandsCmd prints the command tree
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the command tree",
	Long: `List the command tree with usage, restrictions and descriptions.
With --handlers the handler keys a manifest may bind are listed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		h, err := shell.New(cfg)
		if err != nil {
			return err
		}
		if listHandlers {
			printHandlers(cmd.OutOrStdout(), h.Handlers())
			return nil
		}
		printTree(cmd.OutOrStdout(), h.Dispatcher().Roots(), 0)
		return nil
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		if detailed {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Read configuration from a YAML file")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Load the command tree from a YAML manifest")

	// Bind flags to viper
	for _, key := range []string{config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyManifest} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	execCmd.Flags().StringVarP(&execLine, "line", "c", "", "Dispatch a single command line")
	execCmd.Flags().BoolVar(&execFailFast, "fail-fast", false, "Stop at the first failing line")
	commandsCmd.Flags().BoolVar(&listHandlers, "handlers", false, "List handler keys for manifests")
	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Show build details")

	// Add subcommands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(versionCmd)

	// Load configuration and configure the logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load(viper.GetViper(), config.Options{
		ConfigFile:  configFile,
		DotEnvPaths: config.DefaultDotEnvPaths(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting Aurora", "version", version.GetVersion())

	h, err := shell.New(cfg)
	if err != nil {
		logger.Fatal("Failed to build command tree", "error", err)
	}

	ctx, cancel := signalContext()
	defer cancel()
	h.Start(ctx)

	if err := h.RunInteractive(ctx); err != nil {
		logger.Fatal("Shell failed", "error", err)
	}
}

func runExec(cmd *cobra.Command, args []string) error {
	h, err := shell.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	h.Start(ctx)

	console := shell.NewConsoleCaller(cmd.OutOrStdout())
	if execLine != "" {
		return h.ProcessLine(console, execLine)
	}

	scriptPath := ""
	if len(args) == 1 {
		scriptPath = args[0]
		if err := validateScriptFile(scriptPath); err != nil {
			return err
		}
	}

	logger.Info("Starting Aurora batch mode", "version", version.GetVersion(), "script", scriptPath)
	result, err := h.RunScriptFile(ctx, console, scriptPath, execFailFast)
	if err != nil {
		return err
	}
	logger.Info("Script finished", "commands", result.Commands, "failed", result.Failed)
	return nil
}

func validateScriptFile(scriptPath string) error {
	// Check if file exists
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}

	// Check file extension
	if ext := filepath.Ext(scriptPath); ext != ".aurora" {
		return fmt.Errorf("script file must have .aurora extension, got: %s", ext)
	}

	return nil
}

// printTree writes one line per node: usage, restrictions and description.
func printTree(w io.Writer, nodes []*command.Node, depth int) {
	for _, node := range nodes {
		line := strings.Repeat("  ", depth) + node.Name()
		if usage := node.Usage(); usage != "" {
			line += " " + usage
		}

		var notes []string
		if aliases := node.Aliases(); len(aliases) > 0 {
			notes = append(notes, "aliases: "+strings.Join(aliases, ", "))
		}
		if node.Permission() != "" {
			notes = append(notes, "permission: "+node.Permission())
		}
		if node.Cooldown() > 0 {
			notes = append(notes, "cooldown: "+node.Cooldown().String())
		}
		if node.AllowedKind() != auroratypes.KindAny {
			notes = append(notes, node.AllowedKind().String()+" only")
		}
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, "; ") + ")"
		}
		if node.Description() != "" {
			line += ": " + node.Description()
		}

		fmt.Fprintln(w, line)
		printTree(w, node.Children(), depth+1)
	}
}

// printHandlers writes one "key: description" line per handler.
func printHandlers(w io.Writer, handlers []commands.Command) {
	width := 0
	for _, h := range handlers {
		width = max(width, len(h.Name()))
	}
	for _, h := range handlers {
		fmt.Fprintf(w, "%-*s  %s\n", width, h.Name(), h.Description())
	}
}
