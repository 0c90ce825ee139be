package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"jobprep-backend/internal/interviews"
	"jobprep-backend/internal/resumes"
	"jobprep-backend/internal/shared/metrics"
	"jobprep-backend/internal/shared/storage/object"
	"jobprep-backend/internal/shared/telemetry"
	"jobprep-backend/internal/shared/util"
	"jobprep-backend/internal/users"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrFileNotFound  = errors.New("file not found")
)

type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

type formatInfo struct {
	dir         string
	contentType string
	render      func(Report) ([]byte, error)
}

var formats = map[Format]formatInfo{
	FormatDOCX: {
		dir:         "exported_docs",
		contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		render:      RenderDOCX,
	},
	FormatPDF: {
		dir:         "exported_pdfs",
		contentType: "application/pdf",
		render:      RenderPDF,
	},
}

func lookupFormat(f Format) (formatInfo, error) {
	info, ok := formats[f]
	if !ok {
		return formatInfo{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return info, nil
}

// ContentType returns the MIME type served for a format.
func (f Format) ContentType() string {
	return formats[f].contentType
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
}

type ResumeLister interface {
	ListByUser(ctx context.Context, userID int64) ([]resumes.Resume, error)
}

type InterviewLister interface {
	ListQuestionsByUser(ctx context.Context, userID int64) ([]interviews.Question, error)
	ListAnswersByUser(ctx context.Context, userID int64) ([]interviews.AnswerWithQuestion, error)
}

// Export is what the API returns after rendering.
type Export struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

type Service struct {
	Users      UserLookup
	Resumes    ResumeLister
	Interviews InterviewLister
	Store      object.ObjectStore
	Now        func() time.Time
}

// FileName is the stored name of a user's report; a new export replaces the previous one.
func FileName(userID int64, f Format) string {
	return fmt.Sprintf("report_user_%d.%s", userID, f)
}

func objectKey(info formatInfo, name string) string {
	return info.dir + "/" + name
}

// Report gathers everything recorded for the user. Unknown users fail with users.ErrNotFound.
func (s *Service) Report(ctx context.Context, userID int64) (Report, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Report{}, err
	}

	var (
		rs []resumes.Resume
		qs []interviews.Question
		as []interviews.AnswerWithQuestion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rs, err = s.Resumes.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		qs, err = s.Interviews.ListQuestionsByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		as, err = s.Interviews.ListAnswersByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return BuildReport(user, rs, qs, as, s.now()), nil
}

// Export renders the user's report in the given format and stores it.
func (s *Service) Export(ctx context.Context, userID int64, f Format) (Export, error) {
	info, err := lookupFormat(f)
	if err != nil {
		return Export{}, err
	}
	report, err := s.Report(ctx, userID)
	if err != nil {
		return Export{}, err
	}
	data, err := info.render(report)
	if err != nil {
		return Export{}, err
	}

	name := FileName(userID, f)
	size, err := s.Store.Put(ctx, objectKey(info, name), info.contentType, bytes.NewReader(data))
	if err != nil {
		return Export{}, fmt.Errorf("store export: %w", err)
	}
	metrics.IncExport(string(f))
	telemetry.Info("export.complete", map[string]any{
		"user_id":    userID,
		"format":     string(f),
		"size_bytes": size,
	})
	return Export{
		Filename:    name,
		DownloadURL: fmt.Sprintf("/exporter/download/%s/%s", f, name),
	}, nil
}

// Open returns a stored export. Names that fail sanitising or do not carry the
// format's extension are reported as ErrFileNotFound.
func (s *Service) Open(ctx context.Context, f Format, filename string) (io.ReadCloser, error) {
	info, err := lookupFormat(f)
	if err != nil {
		return nil, err
	}
	name, err := util.SanitizeFileName(filename)
	if err != nil || name != filename || !util.HasExt(name, "."+string(f)) {
		return nil, ErrFileNotFound
	}
	rc, err := s.Store.Open(ctx, objectKey(info, name))
	if errors.Is(err, object.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
