package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/vango-go/dashboard/internal/errors"
)

// uploadConcurrency bounds parallel uploads.
const uploadConcurrency = 8

// Uploader stores one exported file.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// S3API is the subset of the S3 client used by S3Uploader.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config selects the bucket an export is uploaded to.
type S3Config struct {
	Bucket string
	Prefix string
	Region string
}

// S3Uploader uploads exported files to an S3 bucket.
type S3Uploader struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Uploader creates an uploader using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New(errors.CodeInvalidS3Config).WithDetail("bucket is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidS3Config).Wrap(err)
	}
	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client.
func NewS3UploaderWithClient(client S3API, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key for an output-relative path.
func (u *S3Uploader) Key(rel string) string {
	if u.prefix == "" {
		return rel
	}
	return path.Join(u.prefix, rel)
}

// Upload implements Uploader.
func (u *S3Uploader) Upload(ctx context.Context, rel string, body io.Reader, size int64, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(u.Key(rel)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String(cacheControlFor(rel)),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", u.Key(rel), err)
	}
	return nil
}

// cacheControlFor keeps documents revalidating and lets assets cache.
func cacheControlFor(rel string) string {
	if strings.HasSuffix(rel, ".html") || rel == ManifestFile {
		return "no-cache"
	}
	return "public, max-age=3600"
}

// ContentType returns the MIME type for a file name, defaulting to
// application/octet-stream.
func ContentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// uploadTree uploads files (output-relative, slash separated) from dir. It
// returns the number of files uploaded before the first failure.
func uploadTree(ctx context.Context, up Uploader, dir string, files []string) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	done := make(chan struct{}, len(files))
	for _, rel := range files {
		g.Go(func() error {
			f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}
			if err := up.Upload(ctx, rel, f, info.Size(), ContentType(rel)); err != nil {
				return err
			}
			done <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	n := len(done)
	if err != nil {
		return n, errors.New(errors.CodeUploadFailed).Wrap(err)
	}
	return n, nil
}
