package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/admission"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/notifier"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/spam"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/validation"
)

// maxBodySize bounds the decoded request body. A full reclamation with
// headroom is well under this.
const maxBodySize = 64 << 10

// Auditor records accepted submissions. Implementations must tolerate being
// called concurrently.
type Auditor interface {
	Record(ctx context.Context, rec types.Record) error
}

// Options configures a Pipeline.
type Options struct {
	// AllowedOrigins is matched by substring against the request origin.
	// Empty disables the origin check.
	AllowedOrigins []string

	// GlobalRatePerSecond backstops the per-client window with one
	// process-wide token bucket. Zero disables it.
	GlobalRatePerSecond float64

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Pipeline wires the admission guards, validator, heuristics, and notifier
// into the submission flow.
type Pipeline struct {
	logger    *zap.Logger
	opts      Options
	limiter   *admission.Limiter
	guard     *admission.DuplicateGuard
	validator *validation.Validator
	detector  *spam.Detector
	builder   *notifier.MessageBuilder
	sender    notifier.Sender
	auditor   Auditor // may be nil
	ingress   *rate.Limiter
	clock     func() time.Time
	newID     func() string
}

// New creates a Pipeline. auditor may be nil to disable the audit trail.
func New(
	logger *zap.Logger,
	opts Options,
	limiter *admission.Limiter,
	guard *admission.DuplicateGuard,
	validator *validation.Validator,
	detector *spam.Detector,
	builder *notifier.MessageBuilder,
	sender notifier.Sender,
	auditor Auditor,
) *Pipeline {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	var ingress *rate.Limiter
	if opts.GlobalRatePerSecond > 0 {
		ingress = rate.NewLimiter(rate.Limit(opts.GlobalRatePerSecond), int(opts.GlobalRatePerSecond)+1)
	}
	return &Pipeline{
		logger:    logger.Named("pipeline"),
		opts:      opts,
		limiter:   limiter,
		guard:     guard,
		validator: validator,
		detector:  detector,
		builder:   builder,
		sender:    sender,
		auditor:   auditor,
		ingress:   ingress,
		clock:     clock,
		newID:     uuid.NewString,
	}
}

// Process admits, validates, and delivers one submission. origin is the
// request's Origin header (may be empty), clientID the resolved network
// identifier, and body the undecoded request payload.
func (p *Pipeline) Process(ctx context.Context, origin, clientID string, body io.Reader) (types.Record, error) {
	if err := p.checkOrigin(origin); err != nil {
		submissions.WithLabelValues("forbidden_origin").Inc()
		return types.Record{}, err
	}

	if p.ingress != nil && !p.ingress.Allow() {
		submissions.WithLabelValues("rate_limited").Inc()
		return types.Record{}, &types.RateLimitedError{RetryAfter: 1}
	}

	decision := p.limiter.Check(clientID)
	if !decision.Allowed {
		submissions.WithLabelValues("rate_limited").Inc()
		p.logger.Info("Submission rate limited",
			zap.String("client", clientID),
			zap.Int("retry_after_s", decision.RetryAfter),
		)
		return types.Record{}, &types.RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	var raw types.Submission
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	if err := dec.Decode(&raw); err != nil {
		submissions.WithLabelValues("malformed").Inc()
		return types.Record{}, &types.MalformedRequestError{Err: err}
	}

	result := p.validator.Validate(raw)
	if !result.Valid {
		submissions.WithLabelValues("invalid").Inc()
		return types.Record{}, &types.ValidationError{Errors: result.Errors}
	}

	// The heuristics scan the pre-escape body: escaping rewrites "/" and
	// quotes, which would hide URLs and character runs from the rules.
	if rule := p.detector.Detect(result.Reclamation); rule != "" {
		submissions.WithLabelValues("spam").Inc()
		p.logger.Info("Submission flagged as spam",
			zap.String("client", clientID),
			zap.String("rule", rule),
		)
		return types.Record{}, &types.SuspiciousContentError{Rule: rule}
	}

	if retryAfter, dup := p.guard.Check(result.Sanitized.StudentName); dup {
		submissions.WithLabelValues("duplicate").Inc()
		return types.Record{}, &types.DuplicateSubmissionError{
			RetryAfter: int((retryAfter + time.Second - 1) / time.Second),
		}
	}

	rec := types.Record{
		ID:         p.newID(),
		Submission: result.Sanitized,
		ClientID:   clientID,
		ReceivedAt: p.clock(),
	}

	message := p.builder.Build(rec)
	if err := p.sender.Deliver(ctx, message); err != nil {
		submissions.WithLabelValues("delivery_failed").Inc()
		return types.Record{}, &types.DeliveryError{Reason: "notifier rejected message", Err: err}
	}

	if p.auditor != nil {
		// Audit is best-effort: the notification already went out, so a
		// local write failure must not fail the request.
		if err := p.auditor.Record(ctx, rec); err != nil {
			p.logger.Error("Audit write failed", zap.String("id", rec.ID), zap.Error(err))
		}
	}

	submissions.WithLabelValues("accepted").Inc()
	p.logger.Info("Reclamation accepted",
		zap.String("id", rec.ID),
		zap.String("student", rec.Submission.StudentName),
		zap.String("category", rec.Submission.Category),
		zap.String("client", clientID),
	)
	return rec, nil
}

// checkOrigin enforces the allowed-origin policy. Matching is by substring
// so "reclamation.univ-annaba.dz" admits both the https origin and the
// staging subdomain carrying it.
func (p *Pipeline) checkOrigin(origin string) error {
	if len(p.opts.AllowedOrigins) == 0 || origin == "" {
		return nil
	}
	for _, allowed := range p.opts.AllowedOrigins {
		if allowed != "" && strings.Contains(origin, allowed) {
			return nil
		}
	}
	return &types.ForbiddenOriginError{Origin: origin}
}

// Stats is the live state surface consumed by /api/status.
type Stats struct {
	TrackedClients  int    `json:"trackedClients"`
	TrackedStudents int    `json:"trackedStudents"`
	Sender          string `json:"sender"`
}

// Stats reports current guard occupancy.
func (p *Pipeline) Stats() Stats {
	return Stats{
		TrackedClients:  p.limiter.Len(),
		TrackedStudents: p.guard.Len(),
		Sender:          p.sender.Name(),
	}
}

var _ fmt.Stringer = Stats{}

// String renders the stats for log lines and the CLI.
func (s Stats) String() string {
	return fmt.Sprintf("clients=%d students=%d sender=%s", s.TrackedClients, s.TrackedStudents, s.Sender)
}
