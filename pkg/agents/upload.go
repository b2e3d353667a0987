package agents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// File is one part of a report upload.
type File struct {
	Name   string
	Reader io.Reader
}

// UploadReport posts the report and its attachments as multipart/form-data.
// The report goes in the "report" field and every attachment in a repeated
// "attachments" field. The form is assembled in memory so the request
// carries a Content-Length, which WSGI backends require.
func (c *Client) UploadReport(ctx context.Context, taskID string, report File, attachments ...File) (*apiclient.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeParts(mw, report, attachments); err != nil {
		return nil, fmt.Errorf("failed to build report upload: %w", err)
	}

	req := uploadReport.Request(taskID, nil, nil)
	req.Body = bytes.NewReader(buf.Bytes())
	req.ContentType = mw.FormDataContentType()
	return c.d.Do(ctx, req)
}

func writeParts(mw *multipart.Writer, report File, attachments []File) error {
	if err := writePart(mw, "report", report); err != nil {
		return err
	}
	for _, f := range attachments {
		if err := writePart(mw, "attachments", f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, field string, f File) error {
	part, err := mw.CreateFormFile(field, filepath.Base(f.Name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f.Reader); err != nil {
		return fmt.Errorf("failed to write %s %q: %w", field, f.Name, err)
	}
	return nil
}

// UploadReportFiles opens reportPath and attachmentPaths and uploads them.
func (c *Client) UploadReportFiles(ctx context.Context, taskID, reportPath string, attachmentPaths []string) (*apiclient.Response, error) {
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	open := func(path string) (File, error) {
		f, err := os.Open(path)
		if err != nil {
			return File{}, fmt.Errorf("file not found for upload: %w", err)
		}
		opened = append(opened, f)
		return File{Name: path, Reader: f}, nil
	}

	report, err := open(reportPath)
	if err != nil {
		return nil, err
	}
	attachments := make([]File, 0, len(attachmentPaths))
	for _, p := range attachmentPaths {
		a, err := open(p)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return c.UploadReport(ctx, taskID, report, attachments...)
}
