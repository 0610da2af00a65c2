package cmd

import (
	"github.com/heartdash/config"
	"github.com/heartdash/export"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().StringP("date", "d", "all", "Date to show as YYYY-MM-DD, or all")
	rootCmd.PersistentFlags().String("timezone", config.LocalTimezone, "IANA time zone for timestamp labels")
	rootCmd.PersistentFlags().String("output", config.TextOut, "Output format: text or json or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: trace or debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (serve defaults to "+config.DefaultLogFile+")")
	rootCmd.PersistentFlags().String("color", "auto", "Colored output: auto or yes or no")
	bindFlags(rootCmd)

	serveCmd.Flags().String("addr", config.DefaultAddr, "Address the dashboard listens on")
	serveCmd.Flags().Bool("open", false, "Open the dashboard in the default browser")
	serveCmd.Flags().String("chart-theme", config.DefaultTheme, "ECharts theme")
	serveCmd.Flags().Float64("chart-y-min", config.DefaultYMin, "Lower bound of the heart rate axis")
	serveCmd.Flags().Float64("chart-y-max", config.DefaultYMax, "Upper bound of the heart rate axis")
	bindFlag(serveCmd, "addr", "addr")
	bindFlag(serveCmd, "open", "open")
	bindFlag(serveCmd, "chart.theme", "chart-theme")
	bindFlag(serveCmd, "chart.y-min", "chart-y-min")
	bindFlag(serveCmd, "chart.y-max", "chart-y-max")

	summaryCmd.Flags().String("source", sourceSamples, "Figures to show: samples or record")

	exportCmd.Flags().String("format", export.FormatCSV, "Export format: csv or json or parquet")
	exportCmd.Flags().String("out", "", "File to write")
	_ = exportCmd.MarkFlagRequired("out")
}

func bindFlags(cmd *cobra.Command) {
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		log.Fatal().Err(err).Str("command", cmd.Name()).Msg("error binding flags")
	}
}

func bindFlag(cmd *cobra.Command, key, name string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		log.Fatal().Err(err).Str("flag", name).Msg("error binding flag")
	}
}
