package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/inference"
	"redline/internal/port"
	"redline/internal/staging"
)

// defaultInstruction is the task definition sent with every lease, unless
// overridden through audit.instruction.
const defaultInstruction = `Role: Senior Real Estate Attorney.
Task: Audit lease for Deal Killers.
CRITICAL:
1. RENT: Calculate Total Monthly Liability (Base + NNN).
2. DEPOSIT: Find Existing/Transferred Deposits.
3. RISK: Check for Gross-Up clauses.
Output JSON only with keys: tenant_name, monthly_rent, security_deposit, risk_score (0-10), risk_flags.`

// AuditOutput is the result of one successful pipeline run. Data is the raw
// JSON object the model produced; field defaulting is left to consumers.
type AuditOutput struct {
	Data     json.RawMessage
	Model    string
	Attempts int
}

// AuditService runs the extraction pipeline: upload the staged document to
// the inference service, poll until processed, extract with bounded retry,
// and always delete the remote artifact afterwards.
type AuditService interface {
	Run(ctx context.Context, doc *staging.Staged) (*AuditOutput, error)
}

type auditService struct {
	client port.InferenceClient
	model  string
	cfg    config.AuditConfig
}

// NewAuditService creates a new AuditService implementation.
func NewAuditService(client port.InferenceClient, model string, cfg config.AuditConfig) AuditService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 300
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ThrottleDelay <= 0 {
		cfg.ThrottleDelay = 5 * time.Second
	}
	return &auditService{client: client, model: model, cfg: cfg}
}

func (s *auditService) instruction() string {
	if s.cfg.Instruction != "" {
		return s.cfg.Instruction
	}
	return defaultInstruction
}

func (s *auditService) Run(ctx context.Context, doc *staging.Staged) (*AuditOutput, error) {
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("reading staged document: %w", err)
	}

	remote, err := s.client.Upload(ctx, content, doc.OriginalName, doc.ContentType)
	if err != nil {
		return nil, err
	}

	// Exactly one remote delete per handle obtained, on every exit path.
	// Cleanup must survive caller cancellation and never mask the primary
	// outcome, so it runs on a detached context and failures are only logged.
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := s.client.Delete(cleanupCtx, remote.Name); err != nil {
			log.Printf("auditService.Run: failed to delete remote file %s: %v", remote.Name, err)
		}
	}()

	state, err := s.awaitProcessed(ctx, remote)
	if err != nil {
		return nil, err
	}
	if state == domain.FileStateFailed {
		return nil, domain.ErrDocumentRejected
	}

	return s.extract(ctx, remote)
}

// awaitProcessed polls the remote file state at a fixed interval until it
// leaves PROCESSING, bounded by MaxPolls.
func (s *auditService) awaitProcessed(ctx context.Context, remote *port.RemoteFile) (domain.RemoteFileState, error) {
	state := remote.State
	for polls := 0; !state.Terminal(); polls++ {
		if polls >= s.cfg.MaxPolls {
			return "", domain.ErrProcessingTimeout
		}
		if err := sleepCtx(ctx, s.cfg.PollInterval); err != nil {
			return "", err
		}
		var err error
		state, err = s.client.GetState(ctx, remote.Name)
		if err != nil {
			return "", err
		}
	}
	return state, nil
}

// extract invokes the model with the task instruction, retrying only on
// throttling with a constant delay. Any other attempt failure aborts
// immediately; retrying a malformed response rarely changes the outcome and
// burns quota.
func (s *auditService) extract(ctx context.Context, remote *port.RemoteFile) (*AuditOutput, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		text, err := s.client.Generate(ctx, remote, s.instruction())
		if err != nil {
			var rlErr *inference.RateLimitError
			if errors.As(err, &rlErr) {
				log.Printf("auditService.extract: throttled on attempt %d/%d (provider retry-after %s)",
					attempt, s.cfg.MaxAttempts, rlErr.RetryAfter)
				if attempt == s.cfg.MaxAttempts {
					break
				}
				if err := sleepCtx(ctx, s.cfg.ThrottleDelay); err != nil {
					return nil, err
				}
				continue
			}
			if errors.Is(err, domain.ErrConnectivity) || errors.Is(err, domain.ErrInvalidCredential) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}

		data, err := decodeExtraction(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		return &AuditOutput{Data: data, Model: s.model, Attempts: attempt}, nil
	}
	return nil, domain.ErrExtractionExhausted
}

// decodeExtraction strips fenced-code-block markers wrapping the model
// output and validates that the remainder is a JSON object.
func decodeExtraction(text string) (json.RawMessage, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, fmt.Errorf("parsing model JSON output: %w", err)
	}
	return json.RawMessage(cleaned), nil
}

// sleepCtx waits for d or until ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
