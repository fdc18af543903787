package conversion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAllowedHosts = []string{"files.sharayeh.com"}

func TestNewJobAcceptsAllowedHost(t *testing.T) {
	job, err := NewJob("https://files.sharayeh.com/uploads/deck.pptx", testAllowedHosts)
	require.NoError(t, err)

	assert.Equal(t, StateValidating, job.State())
	assert.Equal(t, "deck.pptx", job.SourceFileName())
	assert.Equal(t, ".pptx", job.SourceExtension())
}

func TestNewJobHostMatchIsCaseInsensitive(t *testing.T) {
	_, err := NewJob("https://FILES.Sharayeh.COM/deck.pptx", testAllowedHosts)
	assert.NoError(t, err)
}

func TestNewJobRejectsUnlistedHost(t *testing.T) {
	_, err := NewJob("https://evil.example.com/deck.pptx", testAllowedHosts)
	require.Error(t, err)

	var jobErr *JobError
	require.True(t, errors.As(err, &jobErr))
	assert.Equal(t, FailureInvalidSource, jobErr.Kind)
}

func TestNewJobRejectsMalformedURL(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"empty", ""},
		{"no scheme", "files.sharayeh.com/deck.pptx"},
		{"bad scheme", "ftp://files.sharayeh.com/deck.pptx"},
		{"garbage", "::::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJob(tt.ref, testAllowedHosts)
			require.Error(t, err)
			assert.Equal(t, FailureInvalidSource, KindOf(err))
		})
	}
}

func TestSourceExtensionDefaultsToPPTX(t *testing.T) {
	job, err := NewJob("https://files.sharayeh.com/download", testAllowedHosts)
	require.NoError(t, err)

	assert.Equal(t, ".pptx", job.SourceExtension())
}

func TestJobRecordsUnits(t *testing.T) {
	job, err := NewJob("https://files.sharayeh.com/deck.pptx", testAllowedHosts)
	require.NoError(t, err)

	job.SetUnitCount(4)
	job.RecordUnitSuccess(1)
	job.RecordUnitFailure(2, "transition rejected")
	job.RecordUnitSuccess(3)
	job.RecordUnitSuccess(4)

	result := job.Complete("https://cdn.example.com/processed_deck.pptx")

	assert.Equal(t, StateDone, job.State())
	assert.Equal(t, []int{1, 3, 4}, result.ProcessedUnits)
	require.Len(t, result.FailedUnits, 1)
	assert.Equal(t, 2, result.FailedUnits[0].Slide)
	assert.Equal(t, "transition rejected", result.FailedUnits[0].Error)
}

func TestJobCompleteReturnsEmptySlicesNotNil(t *testing.T) {
	job, err := NewJob("https://files.sharayeh.com/deck.pptx", testAllowedHosts)
	require.NoError(t, err)

	result := job.Complete("https://cdn.example.com/processed_deck.pptx")

	assert.NotNil(t, result.ProcessedUnits)
	assert.NotNil(t, result.FailedUnits)
	assert.Empty(t, result.ProcessedUnits)
	assert.Empty(t, result.FailedUnits)
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, FailureInternal, KindOf(errors.New("plain error")))
	assert.Equal(t, FailureSourceUnavailable, KindOf(NewJobError(FailureSourceUnavailable, "gone", nil)))
}

func TestIsTerminalClientError(t *testing.T) {
	assert.True(t, IsTerminalClientError(NewJobError(FailureInvalidSource, "bad host", nil)))
	assert.False(t, IsTerminalClientError(NewJobError(FailurePersistFailed, "store down", nil)))
	assert.False(t, IsTerminalClientError(errors.New("plain")))
}
