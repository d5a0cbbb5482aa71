package matching

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context the matching steps need.
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string) error
	DELETE(path string) error
	SavedID(alias string) (string, error)
	ResponseField(field string) (interface{}, error)
	Save(alias, value string)
}

// RegisterSteps wires match computation and link lifecycle steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &matchingSteps{tc: tc}

	ctx.Step(`^I compute matches for recording "([^"]*)"$`, steps.computeMatches)
	ctx.Step(`^I compute matches for recording "([^"]*)" with time tolerance (\d+) minutes$`,
		steps.computeMatchesWithTolerance)
	ctx.Step(`^I save the best match cdr id as "([^"]*)"$`, steps.saveBestCDRID)
	ctx.Step(`^I commit a link from recording "([^"]*)" to cdr "([^"]*)"$`, steps.commitLink)
	ctx.Step(`^I release the link on recording "([^"]*)"$`, steps.releaseLink)

	ctx.Step(`^the match outcome should be "([^"]*)"$`, steps.outcomeShouldBe)
	ctx.Step(`^the candidate pool should have (\d+) records$`, steps.poolShouldHave)
	ctx.Step(`^the best match score should be at least (\d+\.?\d*)$`, steps.bestScoreAtLeast)
}

type matchingSteps struct {
	tc TestContext
}

func (s *matchingSteps) computeMatches(ctx context.Context, alias string) error {
	id, err := s.tc.SavedID(alias)
	if err != nil {
		return err
	}
	return s.tc.POST("/v1/recordings/"+id+"/matches", map[string]interface{}{})
}

func (s *matchingSteps) computeMatchesWithTolerance(ctx context.Context, alias string, minutes int) error {
	id, err := s.tc.SavedID(alias)
	if err != nil {
		return err
	}
	return s.tc.POST("/v1/recordings/"+id+"/matches", map[string]interface{}{
		"time_tolerance_minutes": minutes,
	})
}

func (s *matchingSteps) saveBestCDRID(ctx context.Context, alias string) error {
	v, err := s.tc.ResponseField("best.cdr_id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok {
		return fmt.Errorf("best.cdr_id is not a string: %v", v)
	}
	s.tc.Save(alias, id)
	return nil
}

func (s *matchingSteps) commitLink(ctx context.Context, recAlias, cdrAlias string) error {
	recID, err := s.tc.SavedID(recAlias)
	if err != nil {
		return err
	}
	cdrID, err := s.tc.SavedID(cdrAlias)
	if err != nil {
		return err
	}
	return s.tc.POST("/v1/recordings/"+recID+"/link", map[string]interface{}{
		"cdr_id": cdrID,
		"method": "manual",
	})
}

func (s *matchingSteps) releaseLink(ctx context.Context, recAlias string) error {
	recID, err := s.tc.SavedID(recAlias)
	if err != nil {
		return err
	}
	return s.tc.DELETE("/v1/recordings/" + recID + "/link")
}

func (s *matchingSteps) outcomeShouldBe(ctx context.Context, expected string) error {
	v, err := s.tc.ResponseField("outcome")
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", v); actual != expected {
		return fmt.Errorf("expected outcome %q, got %q", expected, actual)
	}
	return nil
}

func (s *matchingSteps) poolShouldHave(ctx context.Context, expected int) error {
	v, err := s.tc.ResponseField("pool_size")
	if err != nil {
		return err
	}
	size, ok := v.(float64)
	if !ok {
		return fmt.Errorf("pool_size is not a number: %v", v)
	}
	if int(size) != expected {
		return fmt.Errorf("expected pool size %d, got %d", expected, int(size))
	}
	return nil
}

func (s *matchingSteps) bestScoreAtLeast(ctx context.Context, min float64) error {
	v, err := s.tc.ResponseField("best.score")
	if err != nil {
		return err
	}
	score, ok := v.(float64)
	if !ok {
		return fmt.Errorf("best.score is not a number: %v", v)
	}
	if score < min {
		return fmt.Errorf("expected best score >= %v, got %v", min, score)
	}
	return nil
}
