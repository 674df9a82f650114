// Package extension exposes the sip_config table to osquery.
package extension

import (
	"context"
	"time"

	"github.com/osquery/osquery-go"
	"github.com/osquery/osquery-go/plugin/table"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/pkg/version"
)

const (
	Name      = "sipconfig"
	TableName = "sip_config"
)

// Evaluator produces a fresh report on every call.
type Evaluator interface {
	Evaluate(ctx context.Context) *sip.Report
}

// Columns is the schema of the table.
func Columns() []table.ColumnDefinition {
	return []table.ColumnDefinition{
		table.TextColumn("config_flag"),
		table.IntegerColumn("enabled"),
		table.IntegerColumn("enabled_nvram"),
	}
}

// Generate returns the table rows. Unknown values are left out of the row
// map so osquery reports them as NULL.
func Generate(eval Evaluator) table.GenerateFunc {
	return func(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
		rep := eval.Evaluate(ctx)
		rows := make([]map[string]string, 0, len(rep.Rows))
		for _, r := range rep.Rows {
			if !wanted(queryContext, r.ConfigFlag) {
				continue
			}
			rows = append(rows, r.Map())
		}
		return rows, nil
	}
}

// wanted applies equality constraints on config_flag; osquery filters the
// rest itself.
func wanted(qc table.QueryContext, flag string) bool {
	cl, ok := qc.Constraints["config_flag"]
	if !ok {
		return true
	}
	for _, c := range cl.Constraints {
		if c.Operator == table.OperatorEquals && c.Expression != flag {
			return false
		}
	}
	return true
}

func NewPlugin(eval Evaluator) *table.Plugin {
	return table.NewPlugin(TableName, Columns(), Generate(eval))
}

type Config struct {
	Socket   string
	Timeout  time.Duration
	Interval time.Duration
}

// Run registers the table with the osquery extension manager at conf.Socket
// and serves until ctx is cancelled or the manager goes away.
func Run(ctx context.Context, conf Config, eval Evaluator) error {
	if conf.Socket == "" {
		return errors.InvalidArg("socket")
	}

	opts := []osquery.ServerOption{osquery.ExtensionVersion(version.Version)}
	if conf.Timeout > 0 {
		opts = append(opts, osquery.ServerTimeout(conf.Timeout))
	}
	if conf.Interval > 0 {
		opts = append(opts, osquery.ServerPingInterval(conf.Interval))
	}

	server, err := osquery.NewExtensionManagerServer(Name, conf.Socket, opts...)
	if err != nil {
		return errors.Internal("connect to osquery extension manager", err)
	}
	server.RegisterPlugin(NewPlugin(eval))

	done := make(chan error, 1)
	go func() {
		done <- server.Run()
	}()
	log.Info().Str("socket", conf.Socket).Msg("osquery extension registered")

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Debug().Err(err).Msg("osquery extension shutdown")
		}
		return nil
	}
}
