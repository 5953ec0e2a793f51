package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabsgo/bridge"
	"tabsgo/hostbridge"
	"tabsgo/renderer"
	"tabsgo/version"
)

func newRootCmd() *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:           "tabsgo",
		Short:         "Desktop shell host and its presentation client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(v.GetBool("verbose"))
		},
		RunE: runHost(v),
	}

	flags := root.PersistentFlags()
	flags.String("socket", "", "path to the host bridge Unix socket")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	_ = v.BindPFlag("socket_path", flags.Lookup("socket"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		newHostCmd(v),
		newInfoCmd(v),
		newPingCmd(v),
		newVersionsCmd(v),
		newVersionCmd(),
	)
	return root
}

// configureLogging sets up the process-wide logrus logger. VERBOSE in the
// environment has the same effect as --verbose.
func configureLogging(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)
	if _, ok := os.LookupEnv("VERBOSE"); ok || verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func newHostCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Run the host process (default)",
		RunE:  runHost(v),
	}
	cmd.Flags().String("listen", "", "address the page server listens on")
	cmd.Flags().Bool("open", false, "open the page in the system browser")
	_ = v.BindPFlag("listen_addr", cmd.Flags().Lookup("listen"))
	_ = v.BindPFlag("open_browser", cmd.Flags().Lookup("open"))
	return cmd
}

func runHost(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(v)
		if err != nil {
			return err
		}
		app := NewApp(cfg, NewPlatform(), logrus.StandardLogger())
		if err := app.Run(cmd.Context()); err != nil {
			logrus.WithError(err).Error("host failed")
			return err
		}
		return nil
	}
}

// connect dials the host bridge configured in v.
func connect(cmd *cobra.Command, v *viper.Viper) (*hostbridge.Client, error) {
	cfg, err := LoadConfig(v)
	if err != nil {
		return nil, err
	}
	return hostbridge.Connect(cmd.Context(), bridge.NewClient(cfg.SocketPath))
}

func newInfoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Render the version sentence and check the host is alive",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			hb, err := connect(cmd, v)
			if err != nil {
				color.New(color.FgRed).Fprintf(out, "host bridge: %v\n", err)
				return err
			}

			doc := renderer.NewMemDocument(renderer.AllKeys()...)
			controls, err := renderer.Acquire(doc)
			if err != nil {
				return err
			}
			r, err := renderer.New(hb, controls, logrus.StandardLogger())
			if err != nil {
				return err
			}

			task := r.Start(cmd.Context())
			fmt.Fprintln(out, doc.Text(renderer.KeyInfo))

			ack, err := task.Wait(cmd.Context())
			if err != nil {
				color.New(color.FgRed).Fprintf(out, "host did not answer: %v\n", err)
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "host is alive (%s)\n", ack)
			return nil
		},
	}
}

func newPingCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send one liveness request to the host",
		RunE: func(cmd *cobra.Command, args []string) error {
			hb, err := connect(cmd, v)
			if err != nil {
				return err
			}
			ack, err := hb.Ping(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ack)
			return nil
		},
	}
}

func newVersionsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Show the versions reported by the host",
		RunE: func(cmd *cobra.Command, args []string) error {
			hb, err := connect(cmd, v)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Component", "Version"})
			t.AppendRows([]table.Row{
				{"Chrome", hb.ChromeVersion()},
				{"Node.js", hb.NodeVersion()},
				{"Electron", hb.HostRuntimeVersion()},
			})
			t.Render()
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tabsgo %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
