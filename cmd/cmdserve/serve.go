package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cmdserve"
	"cmdserve/registry"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	schedClass string
	schedLevel int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the loopback command server",
	Long: `Run the command server on 127.0.0.1 until interrupted. The server
stops cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 31415, "port to listen on")
	serveCmd.Flags().StringVar(&schedClass, "sched-class", "", "scheduling class for the accept thread (other|fifo|rr|batch|idle)")
	serveCmd.Flags().IntVar(&schedLevel, "sched-level", 0, "priority (fifo/rr: 1..99) or nice value for --sched-class")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	srv := cmdserve.New(cmdserve.Config{
		MaxConnections: viper.GetInt("max_connections"),
		ReadTimeout:    viper.GetDuration("read_timeout"),
		WriteTimeout:   viper.GetDuration("write_timeout"),
		AcceptInterval: viper.GetDuration("accept_interval"),
	})

	if err := srv.Start(viper.GetInt("port"), registry.Beacon(), eventSink(logger)); err != nil {
		return err
	}

	if schedClass != "" {
		class, err := parseSchedClass(schedClass)
		if err != nil {
			srv.Stop()
			return err
		}
		if err := srv.SetPriority(class, schedLevel); err != nil {
			logger.Warn("could not apply scheduling class", "class", schedClass, "level", schedLevel, "err", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	srv.Stop()
	return nil
}

// newLogger builds the process logger backing the server's event sink.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "cmdserve",
		ReportTimestamp: true,
	})
	level := viper.GetString("log_level")
	if verbose {
		level = "debug"
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}

// eventSink adapts the logger to the server's event contract. Fatal
// events are logged at error level; the hosting process decides
// whether to exit, not the sink.
func eventSink(l *log.Logger) cmdserve.EventFunc {
	return func(sev cmdserve.Severity, msg string, ok bool) {
		switch sev {
		case cmdserve.SeverityDebug:
			l.Debug(msg, "ok", ok)
		case cmdserve.SeverityInfo:
			l.Info(msg, "ok", ok)
		case cmdserve.SeverityWarn:
			l.Warn(msg, "ok", ok)
		default:
			l.Error(msg, "ok", ok)
		}
	}
}

func parseSchedClass(s string) (cmdserve.SchedClass, error) {
	switch s {
	case "other":
		return cmdserve.SchedOther, nil
	case "fifo":
		return cmdserve.SchedFIFO, nil
	case "rr":
		return cmdserve.SchedRR, nil
	case "batch":
		return cmdserve.SchedBatch, nil
	case "idle":
		return cmdserve.SchedIdle, nil
	default:
		return 0, fmt.Errorf("unknown scheduling class %q", s)
	}
}
