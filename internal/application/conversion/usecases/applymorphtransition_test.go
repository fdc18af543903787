package usecases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharayeh/internal/domain/conversion"
	sharedConfig "sharayeh/internal/shared/config"
	"sharayeh/internal/shared/logger"
)

type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

// fakeSlideService is an in-memory double for the remote slide API.
type fakeSlideService struct {
	authErr         error
	uploadErr       error
	listErr         error
	countErr        error
	hideFromListing bool

	slideCount int
	failSlides map[int]bool

	uploadedName string
	applied      []int
	downloadErr  error
	mutated      []byte
}

func (f *fakeSlideService) Authenticate(context.Context) error { return f.authErr }

func (f *fakeSlideService) UploadFile(_ context.Context, name string, _ []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedName = name
	return nil
}

func (f *fakeSlideService) ListFiles(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.hideFromListing || f.uploadedName == "" {
		return []string{"other.pptx"}, nil
	}
	return []string{"other.pptx", f.uploadedName}, nil
}

func (f *fakeSlideService) SlideCount(context.Context, string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.slideCount, nil
}

func (f *fakeSlideService) ApplyTransition(_ context.Context, _ string, slide int, _ conversion.Transition) error {
	if f.failSlides[slide] {
		return errors.New("transition rejected")
	}
	f.applied = append(f.applied, slide)
	return nil
}

func (f *fakeSlideService) DownloadFile(context.Context, string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.mutated != nil {
		return f.mutated, nil
	}
	return []byte("mutated-bytes"), nil
}

type fakeArtifactStore struct {
	putErr error
	key    string
	data   []byte
}

func (f *fakeArtifactStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.key = key
	f.data = data
	return "https://cdn.example.com/" + key, nil
}

func newTestUseCase(slides conversion.SlideService, store conversion.ArtifactStore, allowedHosts []string) *ApplyMorphTransitionUseCase {
	return NewApplyMorphTransitionUseCase(
		slides,
		store,
		&sharedConfig.ConversionConfig{
			AllowedHosts:           allowedHosts,
			DownloadTimeoutSeconds: 5,
			DownloadMaxAttempts:    3,
		},
		&sharedConfig.TransitionConfig{Type: "morph", Duration: 2.0, MorphOption: "byobject"},
		newNopLogger(),
	)
}

// newSourceServer serves the source artifact and counts requests.
func newSourceServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	parsed, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return srv, parsed.Host
}

func countStagedFiles(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "morph-*"))
	require.NoError(t, err)
	return len(matches)
}

func TestExecuteHappyPathWithPartialSlideFailures(t *testing.T) {
	var requests atomic.Int32
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{
		slideCount: 10,
		failSlides: map[int]bool{2: true, 5: true},
	}
	store := &fakeArtifactStore{}
	uc := newTestUseCase(slides, store, []string{host})

	result, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/uploads/deck.pptx",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, []int{1, 3, 4, 6, 7, 8, 9, 10}, result.ProcessedSlides)
	require.Len(t, result.FailedSlides, 2)
	assert.Equal(t, 2, result.FailedSlides[0].Slide)
	assert.Equal(t, 5, result.FailedSlides[1].Slide)

	// Transitions were issued strictly in index order
	assert.Equal(t, []int{1, 3, 4, 6, 7, 8, 9, 10}, slides.applied)

	assert.Equal(t, "processed_deck.pptx", store.key)
	assert.Equal(t, []byte("mutated-bytes"), store.data)
	assert.Equal(t, "https://cdn.example.com/processed_deck.pptx", result.ProcessedFileURL)
}

func TestExecuteRejectsUnlistedHostBeforeAnyNetwork(t *testing.T) {
	var requests atomic.Int32
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	slides := &fakeSlideService{slideCount: 3}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{"files.sharayeh.com"})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureInvalidSource, conversion.KindOf(err))

	// No outbound traffic of any kind before validation passes
	assert.Equal(t, int32(0), requests.Load())
	assert.Empty(t, slides.uploadedName)
}

func TestExecuteRetriesTransientDownloadFailures(t *testing.T) {
	var requests atomic.Int32
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{slideCount: 1}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{host})

	result, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), requests.Load())
	assert.Equal(t, []int{1}, result.ProcessedSlides)
}

func TestExecuteDownloadExhaustsAttempts(t *testing.T) {
	var requests atomic.Int32
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	uc := newTestUseCase(&fakeSlideService{}, &fakeArtifactStore{}, []string{host})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureSourceUnavailable, conversion.KindOf(err))
	assert.Equal(t, int32(3), requests.Load())
}

func TestExecuteClientRejectionIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	uc := newTestUseCase(&fakeSlideService{}, &fakeArtifactStore{}, []string{host})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureSourceUnavailable, conversion.KindOf(err))
	assert.Equal(t, int32(1), requests.Load())
}

func TestExecuteAuthenticationFailure(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{authErr: errors.New("invalid_client")}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{host})

	before := countStagedFiles(t)
	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureAuthenticationFailed, conversion.KindOf(err))

	// Staged temp file is removed on the failure path too
	assert.Equal(t, before, countStagedFiles(t))
}

func TestExecuteUploadVerificationFailure(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{slideCount: 3, hideFromListing: true}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{host})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureUploadVerificationFailed, conversion.KindOf(err))
}

func TestExecuteResultUnavailable(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{slideCount: 2, downloadErr: errors.New("storage gone")}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{host})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureResultUnavailable, conversion.KindOf(err))
}

func TestExecutePersistFailure(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{slideCount: 2}
	store := &fakeArtifactStore{putErr: errors.New("bucket unavailable")}
	uc := newTestUseCase(slides, store, []string{host})

	before := countStagedFiles(t)
	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailurePersistFailed, conversion.KindOf(err))
	assert.Equal(t, before, countStagedFiles(t))
}

func TestExecuteCleansUpStagedFileOnSuccess(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("source-bytes"))
	})

	slides := &fakeSlideService{slideCount: 1}
	uc := newTestUseCase(slides, &fakeArtifactStore{}, []string{host})

	before := countStagedFiles(t)
	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.NoError(t, err)
	assert.Equal(t, before, countStagedFiles(t))
}

func TestExecuteEmptySourceIsUnavailable(t *testing.T) {
	_, host := newSourceServer(t, func(w http.ResponseWriter, r *http.Request) {
		// 200 with no body
	})

	uc := newTestUseCase(&fakeSlideService{}, &fakeArtifactStore{}, []string{host})

	_, err := uc.Execute(context.Background(), ApplyMorphTransitionCommand{
		UserID:    "user_1",
		SourceURL: "http://" + host + "/deck.pptx",
	})
	require.Error(t, err)
	assert.Equal(t, conversion.FailureSourceUnavailable, conversion.KindOf(err))
}
