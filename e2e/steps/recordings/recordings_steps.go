package recordings

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context the recording steps need.
type TestContext interface {
	POST(path string, body interface{}) error
	LastStatus() int
	ResponseField(field string) (interface{}, error)
	Save(alias, value string)
}

// RegisterSteps wires recording registration steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &recordingSteps{tc: tc}

	ctx.Step(`^I register a recording observed at "([^"]*)" lasting (\d+) seconds for phone "([^"]*)"$`,
		steps.registerRecording)
	ctx.Step(`^I register a recording observed at "([^"]*)" with no metadata$`,
		steps.registerBareRecording)
	ctx.Step(`^I save the recording id as "([^"]*)"$`, steps.saveRecordingID)
}

type recordingSteps struct {
	tc TestContext
}

func (s *recordingSteps) registerRecording(ctx context.Context, observed string, duration int, phone string) error {
	observedTime, err := time.Parse(time.RFC3339, observed)
	if err != nil {
		return fmt.Errorf("parse observed time: %w", err)
	}
	body := map[string]interface{}{
		"observed_time":    observedTime.Format(time.RFC3339),
		"duration_seconds": duration,
		"phone_number":     phone,
		"storage_path":     fmt.Sprintf("s3://callsync-e2e/%d.wav", observedTime.Unix()),
	}
	return s.tc.POST("/v1/recordings", body)
}

func (s *recordingSteps) registerBareRecording(ctx context.Context, observed string) error {
	observedTime, err := time.Parse(time.RFC3339, observed)
	if err != nil {
		return fmt.Errorf("parse observed time: %w", err)
	}
	body := map[string]interface{}{
		"observed_time": observedTime.Format(time.RFC3339),
		"storage_path":  fmt.Sprintf("s3://callsync-e2e/%d.wav", observedTime.Unix()),
	}
	return s.tc.POST("/v1/recordings", body)
}

func (s *recordingSteps) saveRecordingID(ctx context.Context, alias string) error {
	v, err := s.tc.ResponseField("id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok {
		return fmt.Errorf("recording id is not a string: %v", v)
	}
	s.tc.Save(alias, id)
	return nil
}
