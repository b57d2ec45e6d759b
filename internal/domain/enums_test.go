package domain

import "testing"

func TestEmotionLabel_IsValid(t *testing.T) {
	t.Parallel()

	valid := []EmotionLabel{EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear, EmotionSurprise, EmotionNeutral}
	for _, l := range valid {
		if !l.IsValid() {
			t.Errorf("%s should be valid", l)
		}
	}

	invalid := []EmotionLabel{"", "happy", "JOY", "disgust"}
	for _, l := range invalid {
		if l.IsValid() {
			t.Errorf("%q should be invalid", l)
		}
	}
}

func TestIntensity_IsValid(t *testing.T) {
	t.Parallel()

	for _, i := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh} {
		if !i.IsValid() {
			t.Errorf("%s should be valid", i)
		}
	}
	if Intensity("extreme").IsValid() {
		t.Error("extreme should be invalid")
	}
}

func TestDispatchStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []DispatchStatus{DispatchPending, DispatchLeased, DispatchDone, DispatchDead} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if DispatchStatus("retrying").IsValid() {
		t.Error("retrying should be invalid")
	}
}

func TestIntakeMode_IsValid(t *testing.T) {
	t.Parallel()

	if !ModeSync.IsValid() || !ModeAsync.IsValid() {
		t.Error("sync and async should be valid")
	}
	if IntakeMode("").IsValid() || IntakeMode("batch").IsValid() {
		t.Error("empty and batch should be invalid")
	}
}

func TestAnalysisSource_IsValid(t *testing.T) {
	t.Parallel()

	if !SourceFallback.IsValid() || !SourceRemote.IsValid() {
		t.Error("fallback and remote should be valid")
	}
	if AnalysisSource("openai").IsValid() {
		t.Error("openai should be invalid")
	}
}
