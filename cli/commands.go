// Package cli implements the dsfr command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aydenstechdungeon/dsfr"
	"github.com/aydenstechdungeon/dsfr/i18n"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configFile   string
	addr         string
	lang         string
	translations string
	watch        bool
	dev          bool
}

func (o *options) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configFile, "config", "c", "", "YAML configuration file")
	flags.StringVar(&o.lang, "lang", "", "default language (fr, en, es, ...)")
	flags.StringVarP(&o.translations, "translations", "t", "", "YAML file of extra component translations")
}

// config merges the configuration file and the flags that were set.
func (o *options) config(flags *pflag.FlagSet) (dsfr.Config, error) {
	config := dsfr.DefaultConfig()
	if o.configFile != "" {
		var err error
		if config, err = dsfr.LoadConfig(o.configFile); err != nil {
			return config, err
		}
	}
	if flags.Changed("addr") {
		config.Addr = o.addr
	}
	if flags.Changed("lang") {
		config.DefaultLang = o.lang
	}
	if flags.Changed("translations") {
		config.TranslationsFile = o.translations
	}
	if flags.Changed("watch") {
		config.WatchTranslations = o.watch
	}
	if flags.Changed("dev") {
		config.DevMode = o.dev
	}
	return config, nil
}

// NewRootCommand returns the dsfr command with its subcommands.
func NewRootCommand(printer *ColorPrinter) *cobra.Command {
	root := &cobra.Command{
		Use:           "dsfr",
		Short:         "Preview and render the DSFR components",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(printer), newRenderCommand(printer), newVersionCommand(printer))
	return root
}

func newServeCommand(printer *ColorPrinter) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the component preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			app, err := dsfr.New(config)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = app.Shutdown()
			}()

			printer.Info("Serving %s on %s", printer.Bold(config.AppName), printer.Cyan(config.Addr))
			return app.Listen()
		},
	}
	o.bind(cmd.Flags())
	cmd.Flags().StringVarP(&o.addr, "addr", "a", "", "listen address")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "reload the translations file on change")
	cmd.Flags().BoolVar(&o.dev, "dev", false, "development mode")
	return cmd
}

func newRenderCommand(printer *ColorPrinter) *cobra.Command {
	var (
		o   options
		out string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the component gallery as a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			if config.WatchTranslations {
				printer.Warning("watch_translations is ignored by render")
				config.WatchTranslations = false
			}
			app, err := dsfr.New(config)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			lang := i18n.ParseLang(config.DefaultLang)
			if err := app.RenderStatic(context.Background(), w, lang); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if out != "" {
				printer.Success("Rendered %d modals to %s %s", len(app.ModalInfos()), out, printer.Dim("("+lang.String()+")"))
			}
			return nil
		},
	}
	o.bind(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newVersionCommand(printer *ColorPrinter) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dsfr %s\n", printer.Bold("v"+dsfr.Version))
		},
	}
}
