package agents

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testhub/testhub-go/pkg/apiclient"
	"github.com/testhub/testhub-go/pkg/apiclient/apiclienttest"
)

type receivedUpload struct {
	path          string
	contentLength int64
	report        string
	reportName    string
	attachments   map[string]string
}

func uploadServer(t *testing.T, got *receivedUpload) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.contentLength = r.ContentLength
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		read := func(field string, i int) (string, string) {
			fh := r.MultipartForm.File[field][i]
			f, err := fh.Open()
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			return fh.Filename, string(data)
		}
		got.reportName, got.report = read("report", 0)
		got.attachments = map[string]string{}
		for i := range r.MultipartForm.File["attachments"] {
			name, data := read("attachments", i)
			got.attachments[name] = data
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 5}`)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestUploadReport_Multipart(t *testing.T) {
	var got receivedUpload
	ts := uploadServer(t, &got)
	c := New(apiclient.New(ts.URL + "/api"))

	resp, err := c.UploadReport(context.Background(), "31",
		File{Name: "/tmp/ws/allure-report-31.zip", Reader: strings.NewReader("PK-zip")},
		File{Name: "logs/run.log", Reader: strings.NewReader("line 1")},
		File{Name: "shot.png", Reader: strings.NewReader("png")},
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "/api/reports/agent-reports/tasks/31/report/", got.path)
	assert.Greater(t, got.contentLength, int64(0))
	assert.Equal(t, "allure-report-31.zip", got.reportName)
	assert.Equal(t, "PK-zip", got.report)
	assert.Equal(t, map[string]string{"run.log": "line 1", "shot.png": "png"}, got.attachments)
}

func TestUploadReport_RequestShape(t *testing.T) {
	rec := &apiclienttest.Recorder{}
	_, err := New(rec).UploadReport(context.Background(), "8", File{Name: "r.zip", Reader: strings.NewReader("x")})
	require.NoError(t, err)

	req := rec.Last()
	assert.Equal(t, UploadTimeout, req.Timeout)
	assert.True(t, strings.HasPrefix(req.ContentType, "multipart/form-data; boundary="))
	_, isReader := req.Body.(io.Reader)
	assert.True(t, isReader)
}

func TestUploadReportFiles(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.zip")
	attachment := filepath.Join(dir, "out.log")
	require.NoError(t, os.WriteFile(report, []byte("zip"), 0o600))
	require.NoError(t, os.WriteFile(attachment, []byte("log"), 0o600))

	var got receivedUpload
	ts := uploadServer(t, &got)
	c := New(apiclient.New(ts.URL))

	_, err := c.UploadReportFiles(context.Background(), "4", report, []string{attachment})
	require.NoError(t, err)
	assert.Equal(t, "zip", got.report)
	assert.Equal(t, map[string]string{"out.log": "log"}, got.attachments)

	rec := &apiclienttest.Recorder{}
	_, err = New(rec).UploadReportFiles(context.Background(), "4", report, []string{filepath.Join(dir, "missing.png")})
	assert.ErrorContains(t, err, "file not found for upload")
	assert.Nil(t, rec.Last(), "nothing is sent when a file is missing")
}
