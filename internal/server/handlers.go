package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tube-notes/internal/jobs"
	"github.com/nguyentantai21042004/tube-notes/internal/summarizer"
	"github.com/nguyentantai21042004/tube-notes/internal/transcript"
	"github.com/nguyentantai21042004/tube-notes/internal/video"
)

type indexData struct {
	Refresh      int
	Link         string
	ThumbnailURL string
	Warning      string
	Models       []summarizer.ModelInfo
	ModelsErr    string
}

type jobView struct {
	ID           string
	Link         string
	ThumbnailURL string
	Running      bool
	Elapsed      string
	Summary      template.HTML
	Error        string
}

type jobData struct {
	Refresh int
	Job     jobView
}

func (s *implServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Link: strings.TrimSpace(r.URL.Query().Get("link"))}
	if id, err := video.ParseLink(data.Link); err == nil {
		data.ThumbnailURL = video.ThumbnailURL(id)
	}
	s.renderIndex(w, r, http.StatusOK, data)
}

func (s *implServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	link := strings.TrimSpace(r.PostForm.Get("link"))
	data := indexData{Link: link}

	if link == "" {
		data.Warning = "Please enter a video link."
		s.renderIndex(w, r, http.StatusBadRequest, data)
		return
	}

	id, err := video.ParseLink(link)
	if err != nil {
		data.Warning = WarningMarker + " " + describeError(err)
		s.renderIndex(w, r, http.StatusBadRequest, data)
		return
	}
	data.ThumbnailURL = video.ThumbnailURL(id)

	job, err := s.runner.Submit(link)
	if errors.Is(err, jobs.ErrBusy) {
		data.Warning = WarningMarker + " A request is already in progress. Please wait for it to finish."
		s.renderIndex(w, r, http.StatusConflict, data)
		return
	}
	if err != nil {
		data.Warning = WarningMarker + " " + describeError(err)
		s.renderIndex(w, r, http.StatusInternalServerError, data)
		return
	}

	http.Redirect(w, r, "/summaries/"+job.ID, http.StatusSeeOther)
}

func (s *implServer) handleJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookup(w, r)
	if !ok {
		return
	}

	data := jobData{Job: newJobView(job)}
	if data.Job.Running {
		data.Refresh = 2
	}
	s.render(w, r, http.StatusOK, "job.html", data)
}

func (s *implServer) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.runner.Cancel(id); err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/summaries/"+id, http.StatusSeeOther)
}

func (s *implServer) handleDocx(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if job.Status != jobs.StatusSucceeded {
		http.Error(w, "notes are not ready", http.StatusConflict)
		return
	}

	tmp, err := os.CreateTemp(s.cfg.Paths.Temp, "notes-*.docx")
	if err != nil {
		s.serverError(w, r, fmt.Errorf("create temp file: %w", err))
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	res := job.Result
	if err := summarizer.WriteNotesDocx(res.VideoID, res.Summary, res.Transcript.Fragments, tmpPath); err != nil {
		s.serverError(w, r, err)
		return
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		s.serverError(w, r, fmt.Errorf("open docx: %w", err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-notes.docx"`, safeFilename(res.VideoID)))
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Warn(r.Context(), "Failed to stream docx for job %s: %v", job.ID, err)
	}
}

func (s *implServer) lookup(w http.ResponseWriter, r *http.Request) (jobs.Job, bool) {
	job, err := s.runner.Get(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return jobs.Job{}, false
	}
	return job, true
}

func (s *implServer) renderIndex(w http.ResponseWriter, r *http.Request, status int, data indexData) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.ModelsTimeout)
	defer cancel()

	models, err := s.summarizer.ListModels(ctx)
	if err != nil {
		data.ModelsErr = err.Error()
	}
	data.Models = models

	s.render(w, r, status, "index.html", data)
}

func (s *implServer) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

func (s *implServer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func newJobView(job jobs.Job) jobView {
	v := jobView{
		ID:           job.ID,
		Link:         job.Link,
		ThumbnailURL: job.Result.ThumbnailURL,
		Running:      !job.Done(),
	}
	if job.Result.Summary != "" {
		v.Summary = renderMarkdown(job.Result.Summary)
	}
	if v.ThumbnailURL == "" {
		if id, err := video.ParseLink(job.Link); err == nil {
			v.ThumbnailURL = video.ThumbnailURL(id)
		}
	}
	if v.Running {
		v.Elapsed = time.Since(job.StartedAt).Round(time.Second).String()
	}
	if job.Err != nil {
		v.Error = describeError(job.Err)
	}
	return v
}

// describeError turns a pipeline error into the message shown after the
// warning marker.
func describeError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Request canceled."
	case errors.Is(err, video.ErrMalformedLink):
		return "Invalid video link: " + err.Error()
	case errors.Is(err, transcript.ErrUnavailable):
		return "Error fetching transcript: " + err.Error()
	case errors.Is(err, summarizer.ErrConfiguration):
		return "Configuration error: " + err.Error()
	case errors.Is(err, summarizer.ErrGeneration), errors.Is(err, context.DeadlineExceeded):
		return "Error generating summary: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func safeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
