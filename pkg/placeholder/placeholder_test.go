package placeholder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidPNG encodes a w x h PNG filled with c.
func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerate(t *testing.T) {
	gen := NewGenerator(Options{})
	assert.Equal(t, DefaultOptions(), gen.Options())

	p, err := gen.Generate(context.Background(), bytes.NewReader(solidPNG(t, 64, 32, color.NRGBA{R: 255, A: 255})))
	require.NoError(t, err)

	assert.Equal(t, 64, p.Width)
	assert.Equal(t, 32, p.Height)
	assert.Equal(t, "#ff0000", p.Color)
	require.True(t, strings.HasPrefix(p.DataURI, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(p.DataURI, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, p.JPEG, raw)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(p.JPEG))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestGenerateSmallImageIsNotUpscaled(t *testing.T) {
	gen := NewGenerator(Options{Width: 32})
	p, err := gen.Generate(context.Background(), bytes.NewReader(solidPNG(t, 4, 4, color.White)))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(p.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, "#ffffff", p.Color)
}

func TestGenerateDecodeError(t *testing.T) {
	_, err := NewGenerator(Options{}).Generate(context.Background(), strings.NewReader("not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestGenerateTransparentImage(t *testing.T) {
	p, err := NewGenerator(Options{}).Generate(context.Background(), bytes.NewReader(solidPNG(t, 8, 8, color.Transparent)))
	require.NoError(t, err)
	assert.Equal(t, "#000000", p.Color)
}

func TestCleanKey(t *testing.T) {
	valid := map[string]string{
		"lake.jpg":         "lake.jpg",
		"/photos/lake.jpg": "photos/lake.jpg",
		"a/b/c.png":        "a/b/c.png",
	}
	for in, want := range valid {
		got, err := CleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "/", "../etc/passwd", "a/../../b", "a//b", "./a", `a\b`, "a/."} {
		_, err := CleanKey(in)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", in)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "photos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photos", "lake.png"), []byte("data"), 0o644))

	src := NewDirSource(dir)
	ctx := context.Background()

	rc, err := src.Open(ctx, "photos/lake.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "data", string(body))

	_, err = src.Open(ctx, "photos/missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = src.Open(ctx, "photos")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = src.Open(ctx, "../outside.png")
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

type fakeS3 struct {
	objects map[string]string
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = *in.Key
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"media/photos/lake.png": "data"}}
	src := NewS3Source(client, "media", "photos/")

	rc, err := src.Open(context.Background(), "lake.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(body))
	assert.Equal(t, "photos/lake.png", client.lastKey)

	_, err = src.Open(context.Background(), "missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

type fakeMinio struct {
	objects map[string]string
}

func (f *fakeMinio) StatObject(_ context.Context, bucket, object string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	body, ok := f.objects[bucket+"/"+object]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return minio.ObjectInfo{Key: object, Size: int64(len(body))}, nil
}

func (f *fakeMinio) GetObject(_ context.Context, bucket, object string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.objects[bucket+"/"+object])), nil
}

func TestMinioSource(t *testing.T) {
	src := NewMinioSource(&fakeMinio{objects: map[string]string{"assets/img/lake.png": "data"}}, "assets", "img/")

	rc, err := src.Open(context.Background(), "lake.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(body))

	_, err = src.Open(context.Background(), "missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

type countingSource struct {
	Source
	opens atomic.Int32
}

func (s *countingSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.opens.Add(1)
	return s.Source.Open(ctx, key)
}

func newTestService(t *testing.T, opts ...ServiceOption) (*Service, *countingSource) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lake.png"), solidPNG(t, 32, 32, color.NRGBA{B: 255, A: 255}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("garbage"), 0o644))

	src := &countingSource{Source: NewDirSource(dir)}
	return NewService(src, nil, opts...), src
}

func TestServiceMemoizes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc, src := newTestService(t, WithMetrics(m))
	ctx := context.Background()

	first, err := svc.Get(ctx, "lake.png")
	require.NoError(t, err)
	assert.Equal(t, "lake.png", first.Key)
	assert.Equal(t, "#0000ff", first.Color)

	second, err := svc.Get(ctx, "/lake.png")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.opens.Load())
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.memoHits))

	svc.Forget("lake.png")
	_, err = svc.Get(ctx, "lake.png")
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.opens.Load())
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration), "one outcome series")
}

func TestServiceDoesNotRememberFailures(t *testing.T) {
	svc, src := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "broken.png")
	assert.True(t, errors.Is(err, ErrDecode))
	_, err = svc.Get(ctx, "broken.png")
	assert.True(t, errors.Is(err, ErrDecode))
	assert.Equal(t, int32(2), src.opens.Load())
	assert.Equal(t, 0, svc.Len())
}

func TestHandler(t *testing.T) {
	svc, _ := newTestService(t)
	h := Handler(svc)

	tests := []struct {
		name        string
		target      string
		status      int
		contentType string
	}{
		{"json", "/placeholders/lake.png", http.StatusOK, "application/json"},
		{"jpeg", "/placeholders/lake.png?format=jpeg", http.StatusOK, "image/jpeg"},
		{"missing", "/placeholders/missing.png", http.StatusNotFound, "application/json"},
		{"undecodable", "/placeholders/broken.png", http.StatusUnprocessableEntity, "application/json"},
		{"bad format", "/placeholders/lake.png?format=gif", http.StatusBadRequest, ""},
		{"no key", "/placeholders/", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/placeholders/lake.png", nil))
	var got Placeholder
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 32, got.Width)
	assert.Equal(t, "#0000ff", got.Color)
	assert.True(t, strings.HasPrefix(got.DataURI, "data:image/jpeg;base64,"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/placeholders/missing.png", nil))
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "E020", body["code"])
}
