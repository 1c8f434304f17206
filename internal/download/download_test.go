package download

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playrelay/playrelay/internal/media"
	"github.com/playrelay/playrelay/internal/storage"
)

type fakePresigner struct {
	url   string
	err   error
	panic bool

	got      storage.ObjectRef
	filename string
}

func (f *fakePresigner) PresignDownload(_ context.Context, obj storage.ObjectRef, filename string, _ time.Duration) (string, error) {
	if f.panic {
		panic("presigner exploded")
	}
	f.got = obj
	f.filename = filename
	return f.url, f.err
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestRedirectsToDecodedURL(t *testing.T) {
	h := New(nil)
	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, "https://e.com/v.mp4")))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://e.com/v.mp4" {
		t.Errorf("expected Location https://e.com/v.mp4, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="video.mp4"` {
		t.Errorf("unexpected Content-Disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("expected Content-Type video/mp4, got %q", got)
	}
}

func TestRedirectKeepsQueryOfTarget(t *testing.T) {
	h := New(nil)
	raw := "https://cdn.example.com/a b.mp4?token=x&y=1"
	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, raw)))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://cdn.example.com/a%20b.mp4?token=x&y=1" {
		t.Errorf("unexpected Location %q", got)
	}
}

func TestMissingURLReturns400(t *testing.T) {
	h := New(nil)
	for _, target := range []string{
		"/api/download",
		"/api/download?url=",
		"/api/download?url=a&url=b",
	} {
		rec := serve(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
			continue
		}
		if msg := decodeMessage(t, rec); msg != MsgRequired {
			t.Errorf("%s: expected %q, got %q", target, MsgRequired, msg)
		}
		if rec.Header().Get("Content-Disposition") != "" {
			t.Errorf("%s: expected no Content-Disposition on error", target)
		}
	}
}

func TestInvalidURLReturns400(t *testing.T) {
	h := New(nil)
	for _, value := range []string{
		"%25zz",
		"javascript%3Aalert(1)",
		"%2Frelative%2Fpath",
		"%20%20",
		"s3%3A%2F%2Fbucket%2Fkey.mp4",
	} {
		rec := serve(t, h, "/api/download?url="+value)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", value, rec.Code)
			continue
		}
		if msg := decodeMessage(t, rec); msg != MsgInvalid {
			t.Errorf("%s: expected %q, got %q", value, MsgInvalid, msg)
		}
		if rec.Header().Get("Content-Disposition") != "" {
			t.Errorf("%s: expected no Content-Disposition on error", value)
		}
	}
}

func TestS3ReferenceIsPresigned(t *testing.T) {
	presigner := &fakePresigner{url: "https://media.example.com/videos/a.mp4?X-Amz-Signature=abc"}
	h := New(presigner)

	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, "s3://videos/a.mp4")))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != presigner.url {
		t.Errorf("expected presigned Location, got %q", got)
	}
	if presigner.got != (storage.ObjectRef{Bucket: "videos", Key: "a.mp4"}) {
		t.Errorf("unexpected object %+v", presigner.got)
	}
	if presigner.filename != Filename {
		t.Errorf("expected filename %q, got %q", Filename, presigner.filename)
	}
}

func TestForeignBucketIsInvalid(t *testing.T) {
	h := New(&fakePresigner{err: storage.ErrBucketNotAllowed})

	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, "s3://other/a.mp4")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPresignFailureReturns500WithoutPartialHeaders(t *testing.T) {
	h := New(&fakePresigner{err: errors.New("signer down")})

	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, "s3://videos/a.mp4")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != MsgFailed {
		t.Errorf("expected %q, got %q", MsgFailed, msg)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("expected Content-Disposition to be reset")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
}

func TestPanicReturns500(t *testing.T) {
	h := New(&fakePresigner{panic: true})

	rec := serve(t, h, media.DownloadAPIPath(mustRef(t, "s3://videos/a.mp4")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != MsgFailed {
		t.Errorf("expected %q, got %q", MsgFailed, msg)
	}
}

func mustRef(t *testing.T, raw string) media.Reference {
	t.Helper()
	ref, err := media.NewReference(raw)
	if err != nil {
		t.Fatalf("reference %q: %v", raw, err)
	}
	return ref
}
