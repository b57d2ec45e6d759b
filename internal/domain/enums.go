package domain

// EmotionLabel is the fixed set of emotions the classifier can assign.
type EmotionLabel string

const (
	EmotionJoy      EmotionLabel = "joy"
	EmotionSadness  EmotionLabel = "sadness"
	EmotionAnger    EmotionLabel = "anger"
	EmotionFear     EmotionLabel = "fear"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionNeutral  EmotionLabel = "neutral"
)

func (l EmotionLabel) String() string { return string(l) }

func (l EmotionLabel) IsValid() bool {
	switch l {
	case EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear, EmotionSurprise, EmotionNeutral:
		return true
	}
	return false
}

// Intensity is the emotional intensity tier derived from intensifier words.
// It is carried in the analysis evidence and is independent of the label.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func (i Intensity) String() string { return string(i) }

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// AnalysisSource identifies which classification strategy produced a result.
type AnalysisSource string

const (
	// SourceFallback marks results produced by the local keyword classifier.
	SourceFallback AnalysisSource = "fallback"
	// SourceRemote marks results produced by the remote model.
	SourceRemote AnalysisSource = "remote"
)

func (s AnalysisSource) String() string { return string(s) }

func (s AnalysisSource) IsValid() bool {
	switch s {
	case SourceFallback, SourceRemote:
		return true
	}
	return false
}

// DispatchStatus represents the lifecycle state of a queued dispatch message.
type DispatchStatus string

const (
	// DispatchPending means the message is waiting to be leased.
	DispatchPending DispatchStatus = "pending"
	// DispatchLeased means a consumer is currently processing the message.
	DispatchLeased DispatchStatus = "leased"
	// DispatchDone means the message was processed and acknowledged.
	DispatchDone DispatchStatus = "done"
	// DispatchDead means the message exceeded its retry budget.
	DispatchDead DispatchStatus = "dead"
)

func (s DispatchStatus) String() string { return string(s) }

func (s DispatchStatus) IsValid() bool {
	switch s {
	case DispatchPending, DispatchLeased, DispatchDone, DispatchDead:
		return true
	}
	return false
}

// IntakeMode selects how text intake hands work to the classifier.
type IntakeMode string

const (
	// ModeSync classifies and persists the analysis before returning.
	ModeSync IntakeMode = "sync"
	// ModeAsync publishes a dispatch message and returns immediately.
	ModeAsync IntakeMode = "async"
)

func (m IntakeMode) String() string { return string(m) }

func (m IntakeMode) IsValid() bool {
	switch m {
	case ModeSync, ModeAsync:
		return true
	}
	return false
}
