package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
	"github.com/operator-framework/ou-cost-category/pkg/categorysync"
	"github.com/operator-framework/ou-cost-category/pkg/costcategory"
	"github.com/operator-framework/ou-cost-category/pkg/organization"
)

const envPrefix = "OU_COST_CATEGORY"

var (
	region          string
	ceRegion        string
	defaultValue    string
	separator       string
	dryRun          bool
	outputFormat    string
	metricsTextfile string

	logLevelStr         string
	logFullTimestamp    bool
	logDisableTimestamp bool
)

var rootCmd = &cobra.Command{
	Use:   "ou-cost-category <name> <YYYY-MM> <depth>",
	Short: "creates or updates a Cost Explorer cost category grouping accounts by OU path",
	Long: `Creates or updates the named cost category so that every account in the
organization is assigned to a value made of its OU path, truncated at <depth>
levels. Accounts directly under the root are assigned to "Root". The rules
take effect from the first day of the <YYYY-MM> month.`,
	Args: cobra.ExactArgs(3),
	RunE: runSync,
}

func init() {
	// globally set time to UTC
	time.Local = time.UTC

	rootCmd.Flags().StringVar(&logLevelStr, "log-level", log.InfoLevel.String(), "log level")
	rootCmd.Flags().BoolVar(&logFullTimestamp, "log-timestamp", true, "log full timestamp if true, otherwise log time since startup")
	rootCmd.Flags().BoolVar(&logDisableTimestamp, "disable-timestamp", false, "disable timestamp logging")

	rootCmd.Flags().StringVar(&region, "region", "", "the region used for the Organizations API, if empty the region is taken from the AWS config or environment")
	rootCmd.Flags().StringVar(&ceRegion, "ce-region", awsutil.DefaultCostExplorerRegion, "the region used for the Cost Explorer API")
	rootCmd.Flags().StringVar(&defaultValue, "default-value", costcategory.DefaultValue, "the cost category value assigned to costs not matched by any rule")
	rootCmd.Flags().StringVar(&separator, "separator", organization.DefaultSeparator, "the string joining OU names into a cost category value")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "if true, looks up and validates the cost category but prints the request instead of sending it")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", categorysync.OutputYAML, "output format of the dry run request, yaml or json")
	rootCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "if non-empty, writes run metrics in the Prometheus text format to this path, for the node_exporter textfile collector")
}

func main() {
	rootCmd.ParseFlags(os.Args[1:])

	if err := SetFlagsFromEnv(rootCmd.Flags(), envPrefix); err != nil {
		log.WithError(err).Fatalf("error setting flags from environment variables: %v", err)
	}
	// LOG_LEVEL is accepted for compatibility with existing deployments.
	if !rootCmd.Flags().Changed("log-level") {
		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			logLevelStr = lvl
		}
	}

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("error executing command: %v", err)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	p, err := parseParams(args)
	if err != nil {
		return err
	}
	// argument errors print usage, everything after does not
	cmd.SilenceUsage = true

	if isFutureMonth(p.effectiveStart, time.Now()) {
		logger.Warnf("effective start %s is in the future", p.effectiveStart.Format("2006-01-02"))
	}
	logger.Infof("target name: %s, start: %s, depth: %d", p.name, p.EffectiveStart(), p.depth)

	clients, err := awsutil.NewClients(region, ceRegion)
	if err != nil {
		return err
	}

	metrics := categorysync.NewMetrics()
	syncer := categorysync.New(logger, clients.Organizations, clients.CostExplorer)
	summary, err := syncer.Run(setupSignals(), categorysync.Options{
		Name:           p.name,
		EffectiveStart: p.EffectiveStart(),
		Depth:          p.depth,
		DefaultValue:   defaultValue,
		Separator:      separator,
		DryRun:         dryRun,
		Output:         outputFormat,
		Out:            cmd.OutOrStdout(),
	})
	if !dryRun {
		metrics.Observe(p.name, summary, err, time.Now())
	}
	if metricsTextfile != "" && !dryRun {
		if werr := metrics.WriteTextfile(metricsTextfile); werr != nil {
			logger.WithError(werr).Errorf("unable to write metrics to %s", metricsTextfile)
		}
	}
	if err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"accounts":   summary.Accounts,
		"labels":     summary.Labels,
		"rules":      summary.Rules,
		"truncated":  summary.Truncated,
		"broken":     summary.Broken,
		"unexpected": summary.Unexpected,
	}).Infof("cost category synchronized")
	return nil
}

func newLogger() log.FieldLogger {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:    logFullTimestamp,
		DisableTimestamp: logDisableTimestamp,
	})
	logger := log.WithFields(log.Fields{
		"app": "ou-cost-category",
	})
	logLevel, err := log.ParseLevel(logLevelStr)
	if err != nil {
		logger.WithError(err).Warnf("invalid log level: %s, defaulting to info", logLevelStr)
		logLevel = log.InfoLevel
	}
	logger.Logger.Level = logLevel
	logger.Debugf("log level set to %s", logLevel.String())
	return logger
}

// SetFlagsFromEnv parses all registered flags in the given flagset,
// and if they are not already set it attempts to set their values from
// environment variables. Environment variables take the name of the flag but
// are UPPERCASE, and any dashes are replaced by underscores. Environment
// variables additionally are prefixed by the given string followed by
// and underscore. For example, if prefix=PREFIX: some-flag => PREFIX_SOME_FLAG
func SetFlagsFromEnv(fs *pflag.FlagSet, prefix string) (err error) {
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		alreadySet[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		if !alreadySet[f.Name] {
			key := prefix + "_" + strings.ToUpper(strings.Replace(f.Name, "-", "_", -1))
			val := os.Getenv(key)
			if val != "" {
				if serr := fs.Set(f.Name, val); serr != nil {
					err = fmt.Errorf("invalid value %q for %s: %v", val, key, serr)
				}
			}
		}
	})
	return err
}

func setupSignals() context.Context {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		log.Infof("got signal %s, cancelling", sig)
		cancel()
	}()
	return ctx
}
