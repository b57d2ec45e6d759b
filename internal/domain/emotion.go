package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmotionLog is one unit of user-submitted text awaiting or having
// received emotional classification. Logs are write-once: the pipeline
// never mutates or deletes them.
type EmotionLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
}

// EmotionAnalysis is the output of one classification attempt, linked to
// exactly one EmotionLog. A log may accumulate multiple analyses over
// time (re-analysis, queue redelivery); none of them is ever overwritten.
type EmotionAnalysis struct {
	ID             uuid.UUID
	EmotionLogID   uuid.UUID
	PrimaryEmotion EmotionLabel
	Confidence     float64
	AnalysisData   *AnalysisData
	CreatedAt      time.Time
}

// AnalysisData is the free-form evidence payload attached to an analysis.
// It records which rule fired and through which strategy, so fallback and
// remote results stay distinguishable in storage.
type AnalysisData struct {
	Reasoning string         `json:"reasoning"`
	Intensity Intensity      `json:"intensity"`
	Source    AnalysisSource `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Text      string         `json:"text"`
}

// Validate checks the invariants every analysis must satisfy before it
// is persisted.
func (a EmotionAnalysis) Validate() error {
	var errs []FieldError

	if a.EmotionLogID == uuid.Nil {
		errs = append(errs, FieldError{Field: "emotion_log_id", Message: "required"})
	}
	if !a.PrimaryEmotion.IsValid() {
		errs = append(errs, FieldError{Field: "primary_emotion", Message: "unknown label"})
	}
	if a.Confidence < 0 || a.Confidence > 1 {
		errs = append(errs, FieldError{Field: "confidence", Message: "must be in [0,1]"})
	}
	if a.AnalysisData != nil && !a.AnalysisData.Source.IsValid() {
		errs = append(errs, FieldError{Field: "analysis_data.source", Message: "unknown source"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Pattern is a recurring emotional pattern detected for a user.
// Pattern detection is not implemented yet; the type pins down the
// reporting contract.
type Pattern struct {
	UserID      uuid.UUID    `json:"userId"`
	Emotion     EmotionLabel `json:"emotion"`
	Occurrences int          `json:"occurrences"`
	FirstSeen   time.Time    `json:"firstSeen"`
	LastSeen    time.Time    `json:"lastSeen"`
}

// Insight is a derived observation about a user's emotional history.
// Insight generation is not implemented yet; the type pins down the
// reporting contract.
type Insight struct {
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
