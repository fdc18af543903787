package usecases

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"sharayeh/internal/domain/conversion"
	sharedConfig "sharayeh/internal/shared/config"
	"sharayeh/internal/shared/id"
	"sharayeh/internal/shared/logger"
)

const (
	// Maximum source artifact size accepted for download (200MB)
	maxSourceSize = 200 << 20

	defaultDownloadTimeout  = 60 * time.Second
	defaultDownloadAttempts = 3
)

type ApplyMorphTransitionCommand struct {
	UserID    string
	SourceURL string
}

// ApplyMorphTransitionResult is the aggregate outcome returned to the caller.
// Partial per-slide failure is still a successful result.
type ApplyMorphTransitionResult struct {
	ProcessedFileURL string
	ProcessedSlides  []int
	FailedSlides     []conversion.UnitFailure
}

// ApplyMorphTransitionUseCase runs one conversion job end to end: fetch the
// source, stage it, push it through the remote slide service with the fixed
// morph transition, and persist the mutated artifact durably.
type ApplyMorphTransitionUseCase struct {
	slides     conversion.SlideService
	store      conversion.ArtifactStore
	transition conversion.Transition

	allowedHosts     []string
	downloadTimeout  time.Duration
	downloadAttempts int
	httpClient       *http.Client

	logger logger.Interface
}

func NewApplyMorphTransitionUseCase(
	slides conversion.SlideService,
	store conversion.ArtifactStore,
	conversionCfg *sharedConfig.ConversionConfig,
	transitionCfg *sharedConfig.TransitionConfig,
	logger logger.Interface,
) *ApplyMorphTransitionUseCase {
	downloadTimeout := defaultDownloadTimeout
	if conversionCfg.DownloadTimeoutSeconds > 0 {
		downloadTimeout = time.Duration(conversionCfg.DownloadTimeoutSeconds) * time.Second
	}
	downloadAttempts := defaultDownloadAttempts
	if conversionCfg.DownloadMaxAttempts > 0 {
		downloadAttempts = conversionCfg.DownloadMaxAttempts
	}

	return &ApplyMorphTransitionUseCase{
		slides: slides,
		store:  store,
		transition: conversion.Transition{
			Type:        transitionCfg.Type,
			Duration:    transitionCfg.Duration,
			MorphOption: transitionCfg.MorphOption,
		},
		allowedHosts:     conversionCfg.AllowedHosts,
		downloadTimeout:  downloadTimeout,
		downloadAttempts: downloadAttempts,
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
		logger: logger,
	}
}

// Execute runs the job. Terminal failures carry a conversion.JobError with
// the kind of the step that failed; per-slide failures never abort the run.
func (uc *ApplyMorphTransitionUseCase) Execute(ctx context.Context, cmd ApplyMorphTransitionCommand) (*ApplyMorphTransitionResult, error) {
	job, err := conversion.NewJob(cmd.SourceURL, uc.allowedHosts)
	if err != nil {
		uc.logger.Warnw("rejected conversion source", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("conversion job started",
		"user_id", cmd.UserID,
		"source_host", job.SourceRef().Host,
		"file", job.SourceFileName(),
	)

	job.Advance(conversion.StateDownloading)
	data, err := uc.downloadSource(ctx, job)
	if err != nil {
		job.Fail()
		return nil, err
	}

	job.Advance(conversion.StateStaging)
	stagedPath, err := uc.stageSource(job, data)
	if err != nil {
		job.Fail()
		return nil, err
	}
	// The staged file is removed whatever happens after this point.
	defer func() {
		if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
			uc.logger.Warnw("failed to remove staged file", "error", err, "path", stagedPath)
		}
	}()

	job.Advance(conversion.StateAuthenticating)
	if err := uc.slides.Authenticate(ctx); err != nil {
		job.Fail()
		uc.logger.Errorw("slide service authentication failed", "error", err)
		return nil, conversion.NewJobError(conversion.FailureAuthenticationFailed, "slide service authentication failed", err)
	}

	job.Advance(conversion.StateUploading)
	if err := uc.uploadAndVerify(ctx, job, data); err != nil {
		job.Fail()
		return nil, err
	}

	job.Advance(conversion.StateEnumerating)
	count, err := uc.slides.SlideCount(ctx, job.StagedName())
	if err != nil {
		job.Fail()
		uc.logger.Errorw("failed to enumerate slides", "error", err, "name", job.StagedName())
		return nil, conversion.NewJobError(conversion.FailureResultUnavailable, "failed to enumerate slides", err)
	}
	job.SetUnitCount(count)

	job.Advance(conversion.StateTransformingUnits)
	uc.transformUnits(ctx, job)

	job.Advance(conversion.StateReassembling)
	mutated, err := uc.slides.DownloadFile(ctx, job.StagedName())
	if err != nil {
		job.Fail()
		uc.logger.Errorw("failed to retrieve mutated artifact", "error", err, "name", job.StagedName())
		return nil, conversion.NewJobError(conversion.FailureResultUnavailable, "failed to retrieve mutated artifact", err)
	}

	job.Advance(conversion.StatePersisting)
	resultKey := "processed_" + job.SourceFileName()
	publicURL, err := uc.store.Put(ctx, resultKey, mutated, contentTypeFor(job.SourceExtension()))
	if err != nil {
		job.Fail()
		uc.logger.Errorw("failed to persist processed artifact", "error", err, "key", resultKey)
		return nil, conversion.NewJobError(conversion.FailurePersistFailed, "failed to persist processed artifact", err)
	}

	result := job.Complete(publicURL)

	uc.logger.Infow("conversion job completed",
		"user_id", cmd.UserID,
		"slides", job.UnitCount(),
		"processed", len(result.ProcessedUnits),
		"failed", len(result.FailedUnits),
		"duration", time.Since(job.StartedAt()),
	)

	return &ApplyMorphTransitionResult{
		ProcessedFileURL: result.ResultArtifactRef,
		ProcessedSlides:  result.ProcessedUnits,
		FailedSlides:     result.FailedUnits,
	}, nil
}

// downloadSource fetches the source artifact with linear backoff. Network
// errors and 5xx responses are retried; a 4xx rejection is final.
func (uc *ApplyMorphTransitionUseCase) downloadSource(ctx context.Context, job *conversion.Job) ([]byte, error) {
	var data []byte

	attempt := 0
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * time.Second, false
	})

	err := retry.Do(ctx, retry.WithMaxRetries(uint64(uc.downloadAttempts-1), backoff), func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, uc.downloadTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, job.SourceRef().String(), nil)
		if err != nil {
			return fmt.Errorf("failed to create download request: %w", err)
		}

		resp, err := uc.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("source fetch failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			io.Copy(io.Discard, resp.Body)
			return retry.RetryableError(fmt.Errorf("source responded with status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("source responded with status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read source body: %w", err))
		}

		data = body
		return nil
	})
	if err != nil {
		uc.logger.Errorw("source download failed", "error", err, "host", job.SourceRef().Host)
		return nil, conversion.NewJobError(conversion.FailureSourceUnavailable, "source artifact could not be fetched", err)
	}

	if len(data) == 0 {
		return nil, conversion.NewJobError(conversion.FailureSourceUnavailable, "source artifact is empty", nil)
	}

	return data, nil
}

// stageSource writes the artifact to a uniquely named temp file and records
// the derived remote working-storage name on the job.
func (uc *ApplyMorphTransitionUseCase) stageSource(job *conversion.Job, data []byte) (string, error) {
	suffix, err := id.Generate(id.StagedSuffixLength)
	if err != nil {
		return "", conversion.NewJobError(conversion.FailureInternal, "failed to generate staging name", err)
	}

	stagedName := fmt.Sprintf("morph-%d-%s%s", time.Now().UnixNano(), suffix, job.SourceExtension())
	stagedPath := filepath.Join(os.TempDir(), stagedName)

	if err := os.WriteFile(stagedPath, data, 0o600); err != nil {
		return "", conversion.NewJobError(conversion.FailureInternal, "failed to stage source artifact", err)
	}

	job.SetStagedName(stagedName)
	uc.logger.Debugw("source artifact staged", "name", stagedName, "size", len(data))
	return stagedPath, nil
}

// uploadAndVerify pushes the artifact to working storage and confirms it
// appears in the listing. Both run in the same errgroup; the verifier waits
// for the upload to finish before listing once, so it never observes the
// pre-upload state.
func (uc *ApplyMorphTransitionUseCase) uploadAndVerify(ctx context.Context, job *conversion.Job, data []byte) error {
	uploaded := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(uploaded)
		if err := uc.slides.UploadFile(gctx, job.StagedName(), data); err != nil {
			return conversion.NewJobError(conversion.FailureUploadVerificationFailed, "failed to upload artifact to working storage", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-uploaded:
		case <-gctx.Done():
			return gctx.Err()
		}

		names, err := uc.slides.ListFiles(gctx)
		if err != nil {
			return conversion.NewJobError(conversion.FailureUploadVerificationFailed, "failed to list working storage", err)
		}
		for _, name := range names {
			if name == job.StagedName() {
				return nil
			}
		}
		return conversion.NewJobError(conversion.FailureUploadVerificationFailed,
			fmt.Sprintf("uploaded artifact %q missing from working storage listing", job.StagedName()), nil)
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("upload verification failed", "error", err, "name", job.StagedName())
		if _, ok := err.(*conversion.JobError); ok {
			return err
		}
		return conversion.NewJobError(conversion.FailureUploadVerificationFailed, "upload verification failed", err)
	}

	return nil
}

// transformUnits applies the fixed transition to every slide in index order.
// A failed slide is recorded and skipped; the loop always reaches slide N.
func (uc *ApplyMorphTransitionUseCase) transformUnits(ctx context.Context, job *conversion.Job) {
	for slide := 1; slide <= job.UnitCount(); slide++ {
		if err := uc.slides.ApplyTransition(ctx, job.StagedName(), slide, uc.transition); err != nil {
			uc.logger.Warnw("slide transition failed",
				"slide", slide,
				"error", err,
				"name", job.StagedName(),
			)
			job.RecordUnitFailure(slide, err.Error())
			continue
		}
		job.RecordUnitSuccess(slide)
	}
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".ppt":
		return "application/vnd.ms-powerpoint"
	default:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
}
