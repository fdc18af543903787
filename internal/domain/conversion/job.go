package conversion

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// State identifies the step a conversion job is currently in. The lifecycle
// is linear; Failed is reachable from every step.
type State string

const (
	StateValidating        State = "validating"
	StateDownloading       State = "downloading"
	StateStaging           State = "staging"
	StateAuthenticating    State = "authenticating"
	StateUploading         State = "uploading"
	StateEnumerating       State = "enumerating"
	StateTransformingUnits State = "transforming_units"
	StateReassembling      State = "reassembling"
	StatePersisting        State = "persisting"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// UnitFailure records one sub-unit (slide) that could not be transformed.
// A unit failure never aborts the job.
type UnitFailure struct {
	Slide int    `json:"slide"`
	Error string `json:"error"`
}

// Result is the aggregate outcome of a completed job. A non-empty
// FailedUnits is still a structurally successful result; the caller decides
// how to interpret partial failure.
type Result struct {
	ResultArtifactRef string
	ProcessedUnits    []int
	FailedUnits       []UnitFailure
}

// Job is the transient, in-memory record of a single orchestration run. It
// exists only for the duration of one invocation.
type Job struct {
	sourceArtifactRef *url.URL
	stagedName        string
	state             State
	unitCount         int
	processedUnits    []int
	failedUnits       []UnitFailure
	resultArtifactRef string
	startedAt         time.Time
}

// NewJob validates the source reference against the egress allow-list and
// creates a job in the Validating state. Any host outside the allow-list is
// rejected before any network activity.
func NewJob(sourceRef string, allowedHosts []string) (*Job, error) {
	parsed, err := url.Parse(sourceRef)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, NewJobError(FailureInvalidSource, fmt.Sprintf("source reference %q is not a valid URL", sourceRef), err)
	}

	allowed := false
	for _, host := range allowedHosts {
		if strings.EqualFold(parsed.Host, host) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, NewJobError(FailureInvalidSource, fmt.Sprintf("source host %q is not on the allow-list", parsed.Host), nil)
	}

	return &Job{
		sourceArtifactRef: parsed,
		state:             StateValidating,
		startedAt:         time.Now().UTC(),
	}, nil
}

func (j *Job) SourceRef() *url.URL    { return j.sourceArtifactRef }
func (j *Job) State() State           { return j.state }
func (j *Job) StagedName() string     { return j.stagedName }
func (j *Job) UnitCount() int         { return j.unitCount }
func (j *Job) StartedAt() time.Time   { return j.startedAt }
func (j *Job) ProcessedUnits() []int  { return j.processedUnits }
func (j *Job) FailedUnits() []UnitFailure {
	return j.failedUnits
}

// SourceFileName returns the file name component of the source URL.
func (j *Job) SourceFileName() string {
	return path.Base(j.sourceArtifactRef.Path)
}

// SourceExtension returns the source file extension including the dot, or
// ".pptx" when the URL path carries none.
func (j *Job) SourceExtension() string {
	if ext := path.Ext(j.sourceArtifactRef.Path); ext != "" {
		return ext
	}
	return ".pptx"
}

// Advance moves the job to the next step.
func (j *Job) Advance(state State) {
	j.state = state
}

// SetStagedName records the remote working-storage name for the artifact.
func (j *Job) SetStagedName(name string) {
	j.stagedName = name
}

// SetUnitCount records the number of transformable sub-units discovered
// during enumeration.
func (j *Job) SetUnitCount(n int) {
	j.unitCount = n
}

// RecordUnitSuccess appends a transformed unit index in processing order.
func (j *Job) RecordUnitSuccess(index int) {
	j.processedUnits = append(j.processedUnits, index)
}

// RecordUnitFailure appends a failed unit; processing continues with the
// next unit.
func (j *Job) RecordUnitFailure(index int, errMsg string) {
	j.failedUnits = append(j.failedUnits, UnitFailure{Slide: index, Error: errMsg})
}

// Complete marks the job done and returns the aggregate result.
func (j *Job) Complete(resultRef string) *Result {
	j.state = StateDone
	j.resultArtifactRef = resultRef

	processed := j.processedUnits
	if processed == nil {
		processed = []int{}
	}
	failed := j.failedUnits
	if failed == nil {
		failed = []UnitFailure{}
	}

	return &Result{
		ResultArtifactRef: resultRef,
		ProcessedUnits:    processed,
		FailedUnits:       failed,
	}
}

// Fail marks the job failed.
func (j *Job) Fail() {
	j.state = StateFailed
}
