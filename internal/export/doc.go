// Package export renders a dashboard application to a static site.
//
// Every registered route is written to <out>/<path>/index.html, the ui
// stylesheet to <out>/_dashboard/styles.css, and the static directory is
// copied under the static prefix. A manifest.json records the SHA-256 of
// each output file.
//
// When an Uploader is configured the finished tree is pushed to object
// storage:
//
//	up, err := export.NewS3Uploader(ctx, export.S3Config{Bucket: "dash-site"})
//	res, err := export.New(app, export.Options{Output: "dist", Uploader: up}).Export(ctx)
package export
