package logger

import (
	"fmt"
	"sync"
	"time"
)

// StageTracker reports progress of an analysis run through its named stages.
// Callers register a fixed set of stages up front; each Advance logs the
// stage and the overall percentage complete.
type StageTracker struct {
	logger    Logger
	operation string
	stages    []string
	completed int
	startTime time.Time
	callback  func(stage string, percent float64)
	mutex     sync.Mutex
}

// NewStageTracker creates a tracker over the given ordered stages
func NewStageTracker(operation string, stages []string, log Logger) *StageTracker {
	if log == nil {
		log = GetGlobalLogger()
	}

	tracker := &StageTracker{
		logger:    log.WithComponent("progress"),
		operation: operation,
		stages:    stages,
		startTime: time.Now(),
	}

	tracker.logger.WithFields(Fields{
		"operation": operation,
		"stages":    len(stages),
	}).Info("Starting operation")

	return tracker
}

// OnAdvance registers a callback invoked after every stage transition.
// Used by the CLI to render a progress line.
func (st *StageTracker) OnAdvance(fn func(stage string, percent float64)) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.callback = fn
}

// Advance marks the next stage as started and logs progress
func (st *StageTracker) Advance() {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if st.completed >= len(st.stages) {
		return
	}

	stage := st.stages[st.completed]
	st.completed++
	percent := float64(st.completed) / float64(len(st.stages)) * 100

	st.logger.WithFields(Fields{
		"operation": st.operation,
		"stage":     stage,
		"percent":   fmt.Sprintf("%.0f%%", percent),
	}).Info("Progress update")

	if st.callback != nil {
		st.callback(stage, percent)
	}
}

// Complete logs final timing for the run
func (st *StageTracker) Complete() {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	st.logger.WithFields(Fields{
		"operation": st.operation,
		"duration":  time.Since(st.startTime).String(),
	}).Info("Operation completed")
}

// CompleteWithError logs final timing together with the failure
func (st *StageTracker) CompleteWithError(err error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	st.logger.WithError(err).WithFields(Fields{
		"operation": st.operation,
		"stage":     st.currentStageLocked(),
		"duration":  time.Since(st.startTime).String(),
	}).Error("Operation completed with error")
}

func (st *StageTracker) currentStageLocked() string {
	if st.completed == 0 {
		return ""
	}
	return st.stages[st.completed-1]
}
