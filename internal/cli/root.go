// Package cli implements the gdata command.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gdata "github.com/feedkit/gdata.go"
	"github.com/feedkit/gdata.go/internal/version"
	"github.com/feedkit/gdata.go/pkg/logger"
	"github.com/feedkit/gdata.go/pkg/search"
)

type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *Config
	log     *logger.LogData
}

// NewRootCommand builds the gdata command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "gdata",
		Short:         "Query Spreadsheets and Base feeds",
		Version:       version.Get(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML)")

	root.AddCommand(
		newSearchCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the gdata command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logger.New().FromBuffer(stderr).FromPath(cfg.Log.Path).Level(cfg.Log.Level).Make()
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	return nil
}

func (a *app) close() error {
	if a.log == nil {
		return nil
	}
	return a.log.Close()
}

func (a *app) client() (*gdata.Client, *search.Builder, error) {
	cfg, scope, err := a.cfg.ClientConfig(a.log.Logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := gdata.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.Auth.Token != "" {
		client.SetAuthToken(a.cfg.Auth.Token)
	}

	builder, err := search.NewBuilder(client, scope)
	if err != nil {
		return nil, nil, err
	}
	return client, builder, nil
}
