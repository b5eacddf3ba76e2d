package s3_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetree/pkg/adapters/s3"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/ports"
)

// fakeS3 is an in-memory subset of S3 served through the client's transport.
// ListObjectsV2 pages one key at a time to exercise continuation tokens.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Path style: /bucket/key
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return f.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = unchunk(body)
		}
		f.objects[key] = body
		return respond(http.StatusOK, ""), nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return respond(http.StatusNotFound,
				`<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`), nil
		}
		resp := respond(http.StatusOK, "")
		resp.Body = io.NopCloser(bytes.NewReader(body))
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
		return resp, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, ""), nil
	}
	return respond(http.StatusNotImplemented, ""), nil
}

func (f *fakeS3) list(prefix, token string) *http.Response {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if token != "" {
		start, _ = strconv.Atoi(token)
	}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
	if start+1 < len(keys) {
		fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>%d</NextContinuationToken>", start+1)
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	if start < len(keys) {
		k := keys[start]
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size></Contents>", k, len(f.objects[k]))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, b.String())
}

// unchunk decodes an aws-chunked payload: <hex size>[;ext]\r\n<data>\r\n ... 0\r\n<trailers>
func unchunk(body []byte) []byte {
	var out []byte
	for len(body) > 0 {
		line, rest, ok := bytes.Cut(body, []byte("\r\n"))
		if !ok {
			break
		}
		sizeField, _, _ := bytes.Cut(line, []byte(";"))
		n, err := strconv.ParseInt(string(sizeField), 16, 64)
		if err != nil || n == 0 || int(n) > len(rest) {
			break
		}
		out = append(out, rest[:n]...)
		body = bytes.TrimPrefix(rest[n:], []byte("\r\n"))
	}
	return out
}

func newStore(t *testing.T, prefix string) (*s3.Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return s3.NewFromClient(client, "robots", prefix), fake
}

func TestS3Store_Contract(t *testing.T) {
	store, _ := newStore(t, "")
	ports.RunDocumentStoreContract(t, store)
}

func TestS3Store_Prefix(t *testing.T) {
	store, fake := newStore(t, "team/")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Document{Name: "arm", URDF: []byte("<robot/>")}))
	require.NoError(t, store.Save(ctx, &domain.Document{Name: "rover", URDF: []byte("<robot/>")}))
	fake.objects["team/notes.txt"] = []byte("ignored")
	fake.objects["other/arm.json"] = []byte("{}")

	assert.Contains(t, fake.objects, "team/arm.json")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"arm", "rover"}, names)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := s3.New(context.Background(), s3.Config{})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("KINETREE_S3_BUCKET", "robots")
	t.Setenv("KINETREE_S3_PATH_STYLE", "TRUE")
	t.Setenv("KINETREE_S3_PREFIX", "prod/")

	cfg := s3.ConfigFromEnv()
	assert.Equal(t, "robots", cfg.Bucket)
	assert.Equal(t, "prod/", cfg.Prefix)
	assert.True(t, cfg.PathStyle)
}
