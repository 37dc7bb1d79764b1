package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-go/dashboard/internal/config"
	"github.com/vango-go/dashboard/internal/export"
)

type exportOptions struct {
	output   string
	s3Bucket string
	s3Prefix string
	s3Region string
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every page as static HTML",
		Long: `Render every registered page to static HTML.

This command:
  • Renders each route to <output>/<path>/index.html
  • Writes the component stylesheet
  • Copies the static directory
  • Writes manifest.json with file hashes
  • Uploads the output to S3 when a bucket is configured

Examples:
  dashboard export
  dashboard export --output=public_html
  dashboard export --s3-bucket=my-site --s3-region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "Upload the export to this S3 bucket")
	cmd.Flags().StringVar(&opts.s3Prefix, "s3-prefix", "", "Key prefix for uploaded files")
	cmd.Flags().StringVar(&opts.s3Region, "s3-region", "", "AWS region of the bucket")
	return cmd
}

func runExport(cmd *cobra.Command, flags *globalFlags, opts exportOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	applyExportFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app := buildApp(cfg, logger, false)

	out := cmd.OutOrStdout()
	info(out, "Exporting %d pages...", len(app.Routes()))

	expOpts := export.Options{
		Output:       cfg.OutputPath(),
		Root:         cfg.Dir(),
		StaticDir:    cfg.PublicPath(),
		StaticPrefix: cfg.Static.Prefix,
		Logger:       logger,
	}
	if s3 := cfg.Export.S3; s3.Enabled() {
		up, err := export.NewS3Uploader(ctx, export.S3Config{
			Bucket: s3.Bucket,
			Prefix: s3.Prefix,
			Region: s3.Region,
		})
		if err != nil {
			return err
		}
		expOpts.Uploader = up
	}

	res, err := export.New(app, expOpts).Export(ctx)
	if err != nil {
		return err
	}
	printExport(out, cfg, res)
	return nil
}

func applyExportFlags(cfg *config.Config, opts exportOptions) {
	if opts.output != "" {
		cfg.Export.Output = opts.output
	}
	if opts.s3Bucket != "" {
		cfg.Export.S3.Bucket = opts.s3Bucket
	}
	if opts.s3Prefix != "" {
		cfg.Export.S3.Prefix = opts.s3Prefix
	}
	if opts.s3Region != "" {
		cfg.Export.S3.Region = opts.s3Region
	}
}

func printExport(w io.Writer, cfg *config.Config, res *export.Result) {
	fmt.Fprintln(w)
	success(w, "Export complete in %s", res.Duration.Round(time.Millisecond))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s/\n", cfg.Export.Output)
	files := append(res.Files(), export.ManifestFile)
	for i, f := range files {
		branch := "├──"
		if i == len(files)-1 {
			branch = "└──"
		}
		fmt.Fprintf(w, "    %s %s\n", branch, f)
	}
	if res.Uploaded > 0 {
		fmt.Fprintln(w)
		success(w, "Uploaded %d files to s3://%s/%s", res.Uploaded, cfg.Export.S3.Bucket, cfg.Export.S3.Prefix)
	}
	fmt.Fprintln(w)
}
