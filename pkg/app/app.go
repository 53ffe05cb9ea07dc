package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/code-payments/token-fusion/pkg/metrics"
)

const shutdownGracePeriod = 10 * time.Second

// App holds the process wide state of a CLI invocation: the loaded config,
// the optional New Relic application and a correlation id attached to every
// log line.
//
// The lifecycle of the App is tied to a single command. Load it before the
// command runs and call Shutdown after it returns.
type App struct {
	Config  BaseConfig
	Metrics *newrelic.Application
	RunId   string

	log *logrus.Entry
}

// Load reads the optional .env and config files, exports app config keys into
// the environment and configures logging and metrics.
func Load(configPath string, verbose bool) (*App, error) {
	logger := logrus.StandardLogger().WithField("type", "app")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env file")
	}

	v := viper.GetViper()

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file because one hasn't been explicitly set. That is,
	// if we explicitly set a config file, and it does not exist, viper will not
	// return a ConfigFileNotFoundError, so we do it ourselves.
	if len(configPath) > 0 {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to check if config exists")
		}
	}

	if len(v.ConfigFileUsed()) > 0 {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := exportToEnv(config.AppConfig); err != nil {
		return nil, err
	}

	// todo: Better abstraction so we're not directly tied to NR
	var metricsProvider *newrelic.Application
	if len(config.NewRelicLicenseKey) > 0 {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "error connecting to new relic")
		}

		metricsProvider = nr
	}

	configureLogger(config, metricsProvider, verbose)

	runId := uuid.New().String()
	logger.WithFields(logrus.Fields{
		"run_id": runId,
		"config": v.ConfigFileUsed(),
	}).Debug("application loaded")

	return &App{
		Config:  config,
		Metrics: metricsProvider,
		RunId:   runId,
		log:     logger.WithField("run_id", runId),
	}, nil
}

// Logger returns an entry tagged with the run's correlation id.
func (a *App) Logger() *logrus.Entry {
	return a.log
}

// StartCommand returns a context carrying a New Relic transaction for the
// named command, plus the function ending it.
func (a *App) StartCommand(ctx context.Context, name string) (context.Context, func()) {
	a.log.WithField("command", name).Debug("starting command")
	return metrics.NewContext(ctx, a.Metrics, name)
}

// Shutdown flushes pending metrics. It is safe to call more than once.
func (a *App) Shutdown() {
	if a.Metrics == nil {
		return
	}

	a.Metrics.Shutdown(shutdownGracePeriod)
	a.Metrics = nil
}

// exportToEnv sets an environment variable for every leaf of the app config
// that isn't already set. Nested keys are joined with '_' and upper cased, so
// fusion.program_id becomes FUSION_PROGRAM_ID. Explicit environment always
// wins over the config file.
func exportToEnv(values map[string]interface{}) error {
	flattened := make(map[string]string)
	flatten("", values, flattened)

	keys := make([]string, 0, len(flattened))
	for k := range flattened {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}

		if err := os.Setenv(k, flattened[k]); err != nil {
			return errors.Wrapf(err, "failed to export %s", k)
		}
	}

	return nil
}

func flatten(prefix string, values map[string]interface{}, out map[string]string) {
	for k, v := range values {
		key := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(k))
		if len(prefix) > 0 {
			key = prefix + "_" + key
		}

		switch typed := v.(type) {
		case map[string]interface{}:
			flatten(key, typed, out)
		case map[interface{}]interface{}:
			converted := make(map[string]interface{}, len(typed))
			for nk, nv := range typed {
				converted[fmt.Sprint(nk)] = nv
			}
			flatten(key, converted, out)
		case nil:
		default:
			out[key] = fmt.Sprint(typed)
		}
	}
}

func configureLogger(config BaseConfig, metricsProvider *newrelic.Application, verbose bool) {
	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(config.LogFormat, LogFormatJSON) {
		formatter = &logrus.JSONFormatter{}
	}

	if metricsProvider != nil {
		logrus.SetFormatter(metrics.NewLogFormatter(metricsProvider, formatter))
	} else {
		logrus.SetFormatter(formatter)
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Command output goes to stdout.
	logrus.SetOutput(os.Stderr)
}
