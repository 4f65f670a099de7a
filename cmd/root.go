package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"db-scan/internal/dsnlist"
	"db-scan/internal/engine"

	"github.com/gosuri/uiprogress"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	envFile  string
	logLevel string
	logFile  string
)

// errShowHelp ends the run with the help text and a zero exit code.
var errShowHelp = errors.New("usage requested")

var RootCmd = &cobra.Command{
	Use:   "db-scan",
	Short: "Batch migration assessment of a list of databases",
	Long: `
  ____  ____    ____   ____    _    _   _ 
 |  _ \| __ )  / ___| / ___|  / \  | \ | |
 | | | |  _ \  \___ \| |     / _ \ |  \| |
 | |_| | |_) |  ___) | |___ / ___ \| |\  |
 |____/|____/  |____/ \____/_/   \_\_| \_|

DB SCAN - runs the ora2pg migration assessment over every connection of a CSV list
(type,schema,dsn,user,password[,audit_users]) and collects the cost reports.
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return usageError(cmd, err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(viper.GetString("log.level"), viper.GetString("log.file"))
		return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
	},
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	listPath := viper.GetString("scan.list")
	if listPath == "" {
		return fmt.Errorf("a connection list file is required (--list)")
	}

	cfg, err := LoadRunConfig()
	if err != nil {
		return err
	}

	// The whole list is validated before anything is created or executed.
	records, err := dsnlist.Load(listPath)
	if err != nil {
		return err
	}

	if err := prepareOutDir(cfg); err != nil {
		return err
	}

	if cfg.DryRun {
		log.Info("[SIMULATION] Dry-Run Mode Active: no report will be written.")
	}
	log.Infof("Scanning %d connection(s) with %s, reports in %s", len(records), cfg.Binary, cfg.OutDir)
	start := time.Now()

	var progress *uiprogress.Progress
	var onProgress func()
	if !cfg.DryRun && len(records) > 0 {
		progress = uiprogress.New()
		progress.Start()
		bar := progress.AddBar(len(records)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Scanning: "
		})
		onProgress = func() {
			bar.Incr()
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	scanner := engine.NewScanner(cfg, &engine.ExecRunner{Timeout: cfg.Timeout}, os.Stdout)
	results, err := scanner.Scan(ctx, records, onProgress)

	if progress != nil {
		progress.Stop()
	}

	engine.PrintReport(os.Stdout, results)
	if err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	if !cfg.DryRun {
		fmt.Printf("🦅 Summary sheet: %s\n", cfg.SummaryPath())
	}
	log.Infof("Scan Done! Time Elapsed: %s", time.Since(start))
	return nil
}

// Execute runs the root command. Usage errors show the help and exit 0,
// any other error exits 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if errors.Is(err, errShowHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.Flags()
	flags.StringP("list", "l", "", "CSV file listing the connections to assess")
	flags.StringP("outdir", "o", "", "output directory for the reports (must not exist, default \"output\")")
	flags.StringP("config", "c", "", "ora2pg configuration file passed to every invocation")
	flags.StringP("binpath", "b", "", "ora2pg binary, or the directory containing it (default: found in PATH)")
	flags.BoolP("dry-run", "n", false, "print the commands instead of running the reports")
	flags.StringP("format", "t", "", "detail report format: html or json (default \"html\")")
	flags.IntP("cost-unit", "u", 0, "cost unit value in minutes (default 5)")
	flags.Duration("timeout", 0, "maximum duration of one ora2pg invocation (0 = no limit)")

	RootCmd.PersistentFlags().StringVar(&cfgFile, "settings", "", "settings file (default is ./db-scan.yaml)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before running ora2pg (ORACLE_HOME, ...)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default \"info\")")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")

	viper.BindPFlag("scan.list", flags.Lookup("list"))
	viper.BindPFlag("scan.outdir", flags.Lookup("outdir"))
	viper.BindPFlag("scan.config", flags.Lookup("config"))
	viper.BindPFlag("scan.binary", flags.Lookup("binpath"))
	viper.BindPFlag("scan.dry_run", flags.Lookup("dry-run"))
	viper.BindPFlag("scan.format", flags.Lookup("format"))
	viper.BindPFlag("scan.cost_unit", flags.Lookup("cost-unit"))
	viper.BindPFlag("scan.timeout", flags.Lookup("timeout"))
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.file", RootCmd.PersistentFlags().Lookup("log-file"))

	setDefaults()

	RootCmd.SetFlagErrorFunc(usageError)
}

// usageError prints err with the usage text; the run then ends with exit code 0.
func usageError(c *cobra.Command, err error) error {
	c.PrintErrln("Error:", err)
	c.Println(c.UsageString())
	return errShowHelp
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-scan")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DBSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // DBSCAN_SCAN_FORMAT, DBSCAN_LOG_LEVEL, ...

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
