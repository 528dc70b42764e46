// Package gate decides whether analyzed content may be published. It
// evaluates Cedar policies over the analysis result, so operators can
// change the publish rules (deny on high risk, require redaction for
// certain categories) without a rebuild.
package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cedar-policy/cedar-go"
	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
)

// Decision represents the result of a policy evaluation
type Decision string

const (
	ALLOW Decision = "ALLOW"
	DENY  Decision = "DENY"
)

// Obligation represents an action the publisher must take before posting
type Obligation struct {
	Type   string   `json:"type"`   // "REDACT", "RequireReview"
	Fields []string `json:"fields"` // For REDACT: categories to redact
}

// EvaluationResult contains the decision and any obligations
type EvaluationResult struct {
	Decision    Decision     `json:"decision"`
	Reason      string       `json:"reason"`
	PolicyID    string       `json:"policy_id,omitempty"`
	Obligations []Obligation `json:"obligations,omitempty"`
}

// Engine wraps the Cedar policy engine with hot-reloading support
type Engine struct {
	policySet     atomic.Pointer[cedar.PolicySet]
	policyVersion atomic.Pointer[string]
	PolicyPath    string

	watcher    *fsnotify.Watcher
	stopWatch  chan struct{}
	logger     *log.Logger
	reloadLock sync.Mutex
}

// PolicyVersion returns the current policy version (thread-safe)
func (e *Engine) PolicyVersion() string {
	v := e.policyVersion.Load()
	if v == nil {
		return ""
	}
	return *v
}

// NewEngine creates a new Engine and loads policies from a file
func NewEngine(policyPath string) (*Engine, error) {
	return NewEngineWithLogger(policyPath, log.Default())
}

// NewEngineWithLogger creates a new Engine with a custom logger
func NewEngineWithLogger(policyPath string, logger *log.Logger) (*Engine, error) {
	e := &Engine{
		PolicyPath: policyPath,
		stopWatch:  make(chan struct{}),
		logger:     logger,
	}

	// Initial policy load
	if err := e.reload(); err != nil {
		return nil, err
	}

	return e, nil
}

// StartHotReload enables fsnotify file watching for policy hot-reloading
func (e *Engine) StartHotReload() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	e.watcher = watcher

	if err := watcher.Add(e.PolicyPath); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch policy file: %w", err)
	}

	go e.watchLoop()

	e.logger.Printf("[gate] Hot-reload enabled for: %s", e.PolicyPath)
	return nil
}

// StopHotReload stops the file watcher
func (e *Engine) StopHotReload() {
	if e.watcher != nil {
		close(e.stopWatch)
		e.watcher.Close()
	}
}

func (e *Engine) watchLoop() {
	// Debounce timer to handle rapid file saves
	var debounceTimer *time.Timer
	debounce := 500 * time.Millisecond

	for {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					e.reloadLock.Lock()
					defer e.reloadLock.Unlock()

					oldVersion := e.PolicyVersion()
					if err := e.reload(); err != nil {
						e.logger.Printf("[gate] Hot-reload FAILED: %v", err)
					} else {
						e.logger.Printf("[gate] Hot-reload SUCCESS: %s -> %s", oldVersion, e.PolicyVersion())
					}
				})
			}
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Printf("[gate] Watcher error: %v", err)
		case <-e.stopWatch:
			return
		}
	}
}

// reload loads/reloads policies from the file
func (e *Engine) reload() error {
	data, err := os.ReadFile(e.PolicyPath)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}

	// Compute policy version hash
	hash := sha256.Sum256(data)
	version := hex.EncodeToString(hash[:])[:12]

	ps := cedar.NewPolicySet()

	// Split policies by semicolon as a rudimentary parser
	chunks := strings.Split(string(data), ";")
	for i, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		fullPolicy := chunk + ";"

		var policy cedar.Policy
		if err := policy.UnmarshalCedar([]byte(fullPolicy)); err != nil {
			return fmt.Errorf("failed to unmarshal cedar policy part %d: %w", i, err)
		}

		ps.Add(cedar.PolicyID(fmt.Sprintf("policy%d", i)), &policy)
	}

	// Atomic swap
	e.policySet.Store(ps)
	e.policyVersion.Store(&version)

	return nil
}

// Evaluate checks an analysis result against the publish policies
func (e *Engine) Evaluate(res *privacy.Result, filtered bool) EvaluationResult {
	ps := e.policySet.Load()
	if ps == nil {
		return EvaluationResult{
			Decision: DENY,
			Reason:   "Policy engine not initialized",
		}
	}

	// Build content resource with attributes
	entities := cedar.EntityMap{
		cedar.NewEntityUID("Content", "draft"): cedar.Entity{
			UID: cedar.NewEntityUID("Content", "draft"),
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"risk_level": cedar.String(string(res.RiskLevel)),
			}),
		},
	}

	// Build categories set and severity counts
	highCount := 0
	mediumCount := 0
	aiAssisted := false
	categoryValues := make([]cedar.Value, 0, len(res.Findings))
	seen := make(map[privacy.Category]bool)
	for _, f := range res.Findings {
		if !seen[f.Category] {
			seen[f.Category] = true
			categoryValues = append(categoryValues, cedar.String(string(f.Category)))
		}
		switch f.Severity {
		case privacy.SeverityHigh:
			highCount++
		case privacy.SeverityMedium:
			mediumCount++
		}
		if f.Source == privacy.SourceAI {
			aiAssisted = true
		}
	}
	categorySet := cedar.NewSet(categoryValues...)

	req := cedar.Request{
		Principal: cedar.NewEntityUID("Publisher", "default"),
		Action:    cedar.NewEntityUID("Action", "publish"),
		Resource:  cedar.NewEntityUID("Content", "draft"),
		Context: cedar.NewRecord(cedar.RecordMap{
			"risk_level":    cedar.String(string(res.RiskLevel)),
			"categories":    categorySet,
			"finding_count": cedar.Long(int64(len(res.Findings))),
			"high_count":    cedar.Long(int64(highCount)),
			"medium_count":  cedar.Long(int64(mediumCount)),
			"ai_assisted":   cedar.Boolean(aiAssisted),
			"filtered":      cedar.Boolean(filtered),
			"degraded":      cedar.Boolean(res.Error != ""),
		}),
	}

	ok, diagnostics := cedar.Authorize(ps, entities, req)

	var obligations []Obligation
	var policyID string

	if len(diagnostics.Reasons) > 0 {
		// Take the first policy that contributed to the decision
		reason := diagnostics.Reasons[0]
		policyID = string(reason.PolicyID)

		// Extract annotations as obligations
		p := ps.Get(reason.PolicyID)
		if p != nil {
			annotations := p.Annotations()
			if typeVal, ok := annotations["obligation"]; ok {
				obs := Obligation{
					Type: string(typeVal),
				}
				// Optional fields annotation for redaction
				if fieldsVal, ok := annotations["fields"]; ok {
					obs.Fields = strings.Split(string(fieldsVal), ",")
					for i := range obs.Fields {
						obs.Fields[i] = strings.TrimSpace(obs.Fields[i])
					}
				}
				obligations = append(obligations, obs)
			}
		}
	}

	if ok {
		return EvaluationResult{
			Decision:    ALLOW,
			Reason:      "Policy allowed publishing",
			PolicyID:    policyID,
			Obligations: obligations,
		}
	}

	return EvaluationResult{
		Decision:    DENY,
		Reason:      "Policy denied publishing",
		PolicyID:    policyID,
		Obligations: obligations,
	}
}
