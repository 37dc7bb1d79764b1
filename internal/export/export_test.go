package export

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-go/dashboard/internal/errors"
	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/ui"
)

type fakeSource struct {
	pages map[string]string
	fail  string
}

func (s *fakeSource) Routes() []*router.Route {
	var routes []*router.Route
	for p := range s.pages {
		routes = append(routes, &router.Route{Path: p})
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return routes
}

func (s *fakeSource) RenderRoute(_ context.Context, path string) ([]byte, error) {
	if path == s.fail {
		return nil, errors.New(errors.CodeNilPage)
	}
	return []byte(s.pages[path]), nil
}

type memUploader struct {
	mu    sync.Mutex
	files map[string]string
	types map[string]string
	fail  string
}

func (u *memUploader) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if key == u.fail {
		return stderrors.New("boom")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.files == nil {
		u.files = map[string]string{}
		u.types = map[string]string{}
	}
	u.files[key] = string(data)
	u.types[key] = contentType
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPageFile(t *testing.T) {
	tests := map[string]string{
		"/":              "index.html",
		"":               "index.html",
		"/about":         "about/index.html",
		"/reports/daily": "reports/daily/index.html",
	}
	for in, want := range tests {
		if got := PageFile(in); got != want {
			t.Errorf("PageFile(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExport(t *testing.T) {
	root := t.TempDir()
	static := filepath.Join(root, "public")
	if err := os.MkdirAll(filepath.Join(static, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(static, "robots.txt"), []byte("User-agent: *"), 0o644)
	os.WriteFile(filepath.Join(static, "img", "logo.svg"), []byte("<svg/>"), 0o644)

	out := filepath.Join(root, "dist")
	os.MkdirAll(out, 0o755)
	os.WriteFile(filepath.Join(out, "stale.html"), []byte("old"), 0o644)

	src := &fakeSource{pages: map[string]string{
		"/":      "<p>home</p>",
		"/about": "<p>about</p>",
	}}
	res, err := New(src, Options{Output: out, StaticDir: static, Logger: quietLogger()}).Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if !reflect.DeepEqual(res.Pages, []string{"/", "/about"}) {
		t.Errorf("Pages = %v", res.Pages)
	}
	if got := readFile(t, filepath.Join(out, "index.html")); got != "<p>home</p>" {
		t.Errorf("index.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "about", "index.html")); got != "<p>about</p>" {
		t.Errorf("about/index.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "_dashboard", "styles.css")); got != ui.Stylesheet() {
		t.Error("stylesheet not written")
	}
	if got := readFile(t, filepath.Join(out, "img", "logo.svg")); got != "<svg/>" {
		t.Errorf("static copy = %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "stale.html")); !os.IsNotExist(err) {
		t.Error("output directory was not cleaned")
	}

	want := []string{"_dashboard/styles.css", "about/index.html", "img/logo.svg", "index.html", "robots.txt"}
	if got := res.Files(); !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}

	var manifest map[string]string
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, ManifestFile))), &manifest); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(manifest, res.Manifest) {
		t.Error("manifest.json differs from Result.Manifest")
	}
	if len(manifest["index.html"]) != 64 {
		t.Errorf("hash = %q, want sha256 hex", manifest["index.html"])
	}
}

func TestExportStaticPrefix(t *testing.T) {
	root := t.TempDir()
	static := filepath.Join(root, "public")
	os.MkdirAll(static, 0o755)
	os.WriteFile(filepath.Join(static, "app.css"), []byte("body{}"), 0o644)

	out := filepath.Join(root, "dist")
	_, err := New(&fakeSource{}, Options{
		Output:       out,
		StaticDir:    static,
		StaticPrefix: "/assets/",
		Logger:       quietLogger(),
	}).Export(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(out, "assets", "app.css")); got != "body{}" {
		t.Errorf("assets/app.css = %q", got)
	}
}

func TestExportMissingStaticDir(t *testing.T) {
	root := t.TempDir()
	res, err := New(&fakeSource{pages: map[string]string{"/": "x"}}, Options{
		Output:    filepath.Join(root, "dist"),
		StaticDir: filepath.Join(root, "nope"),
		Logger:    quietLogger(),
	}).Export(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Manifest) != 2 {
		t.Errorf("Manifest = %v", res.Manifest)
	}
}

func TestExportRejectsUnsafeOutput(t *testing.T) {
	root := t.TempDir()
	static := filepath.Join(root, "site", "public")
	os.MkdirAll(static, 0o755)
	logo := filepath.Join(static, "logo.svg")
	os.WriteFile(logo, []byte("<svg/>"), 0o644)

	tests := []struct {
		name   string
		output string
	}{
		{"static dir", static},
		{"static parent", filepath.Join(root, "site")},
		{"project root", root},
		{"project parent", filepath.Dir(root)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeSource{pages: map[string]string{"/": "x"}}, Options{
				Output:    tt.output,
				Root:      root,
				StaticDir: static,
				Logger:    quietLogger(),
			}).Export(context.Background())
			if !errors.HasCode(err, errors.CodeUnsafeOutput) {
				t.Errorf("err = %v, want %s", err, errors.CodeUnsafeOutput)
			}
			if got := readFile(t, logo); got != "<svg/>" {
				t.Errorf("logo.svg = %q after rejected export", got)
			}
		})
	}
}

func TestExportRejectsWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(&fakeSource{}, Options{Output: ".", Logger: quietLogger()}).Export(context.Background())
	if !errors.HasCode(err, errors.CodeUnsafeOutput) {
		t.Fatalf("err = %v, want %s", err, errors.CodeUnsafeOutput)
	}
	if _, err := os.Stat(filepath.Join(wd, "export_test.go")); err != nil {
		t.Errorf("working directory touched: %v", err)
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		dir, p string
		want   bool
	}{
		{"/srv/site", "/srv/site", true},
		{"/srv/site", "/srv/site/public", true},
		{"/srv", "/srv/site/public", true},
		{"/srv/site/dist", "/srv/site", false},
		{"/srv/site/dist", "/srv/site/public", false},
		{"/srv/site", "/srv/site2", false},
		{"/srv/site", "/srv/site/..public", true},
	}
	for _, tt := range tests {
		if got := within(filepath.FromSlash(tt.dir), filepath.FromSlash(tt.p)); got != tt.want {
			t.Errorf("within(%q, %q) = %v, want %v", tt.dir, tt.p, got, tt.want)
		}
	}
}

func TestExportRenderError(t *testing.T) {
	src := &fakeSource{pages: map[string]string{"/": "x", "/bad": ""}, fail: "/bad"}
	_, err := New(src, Options{Output: filepath.Join(t.TempDir(), "dist"), Logger: quietLogger()}).Export(context.Background())
	if !errors.HasCode(err, errors.CodeNilPage) {
		t.Errorf("err = %v, want %s", err, errors.CodeNilPage)
	}
}

func TestExportUpload(t *testing.T) {
	up := &memUploader{}
	out := filepath.Join(t.TempDir(), "dist")
	res, err := New(&fakeSource{pages: map[string]string{"/": "<p>home</p>"}}, Options{
		Output:   out,
		Uploader: up,
		Logger:   quietLogger(),
	}).Export(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Uploaded != 3 {
		t.Errorf("Uploaded = %d, want 3", res.Uploaded)
	}
	if up.files["index.html"] != "<p>home</p>" {
		t.Errorf("uploaded index.html = %q", up.files["index.html"])
	}
	if !strings.HasPrefix(up.types["index.html"], "text/html") {
		t.Errorf("content type = %q", up.types["index.html"])
	}
	if _, ok := up.files[ManifestFile]; !ok {
		t.Error("manifest not uploaded")
	}
}

func TestExportUploadFailure(t *testing.T) {
	up := &memUploader{fail: "index.html"}
	_, err := New(&fakeSource{pages: map[string]string{"/": "x"}}, Options{
		Output:   filepath.Join(t.TempDir(), "dist"),
		Uploader: up,
		Logger:   quietLogger(),
	}).Export(context.Background())
	if !errors.HasCode(err, errors.CodeUploadFailed) {
		t.Errorf("err = %v, want %s", err, errors.CodeUploadFailed)
	}
}

type fakeS3 struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
	bodies []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(in.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(data))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader(t *testing.T) {
	client := &fakeS3{}
	up := NewS3UploaderWithClient(client, "site", "/v1/")

	err := up.Upload(context.Background(), "about/index.html", strings.NewReader("hi"), 2, "text/html; charset=utf-8")
	if err != nil {
		t.Fatal(err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("PutObject calls = %d", len(client.inputs))
	}
	in := client.inputs[0]
	if aws.ToString(in.Bucket) != "site" {
		t.Errorf("Bucket = %q", aws.ToString(in.Bucket))
	}
	if aws.ToString(in.Key) != "v1/about/index.html" {
		t.Errorf("Key = %q", aws.ToString(in.Key))
	}
	if aws.ToString(in.CacheControl) != "no-cache" {
		t.Errorf("CacheControl = %q", aws.ToString(in.CacheControl))
	}
	if aws.ToInt64(in.ContentLength) != 2 || client.bodies[0] != "hi" {
		t.Errorf("body = %q (%d)", client.bodies[0], aws.ToInt64(in.ContentLength))
	}
}

func TestS3UploaderKey(t *testing.T) {
	if got := NewS3UploaderWithClient(&fakeS3{}, "b", "").Key("index.html"); got != "index.html" {
		t.Errorf("Key = %q", got)
	}
	if got := NewS3UploaderWithClient(&fakeS3{}, "b", "site").Key("a/b.css"); got != "site/a/b.css" {
		t.Errorf("Key = %q", got)
	}
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3Config{})
	if !errors.HasCode(err, errors.CodeInvalidS3Config) {
		t.Errorf("err = %v, want %s", err, errors.CodeInvalidS3Config)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"index.html":    "text/html",
		"styles.css":    "text/css",
		"manifest.json": "application/json",
		"blob.unknownx": "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); !strings.HasPrefix(got, want) {
			t.Errorf("ContentType(%q) = %q, want prefix %q", name, got, want)
		}
	}
}
