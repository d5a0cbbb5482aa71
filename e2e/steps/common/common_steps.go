package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context the generic steps need.
type TestContext interface {
	AuthenticateAs(name string) error
	ClearAuth()
	GET(path string) error
	DELETE(path string) error
	Expand(path string) (string, error)
	LastStatus() int
	LastBody() []byte
	ResponseField(field string) (interface{}, error)
}

// RegisterSteps wires the background and assertion steps shared by every
// feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am authenticated as "([^"]*)"$`, steps.authenticateAs)
	ctx.Step(`^I am not authenticated$`, steps.notAuthenticated)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I DELETE "([^"]*)"$`, steps.del)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContainField)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the error should be "([^"]*)"$`, steps.errorShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) authenticateAs(ctx context.Context, name string) error {
	return s.tc.AuthenticateAs(name)
}

func (s *commonSteps) notAuthenticated(ctx context.Context) error {
	s.tc.ClearAuth()
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	expanded, err := s.tc.Expand(path)
	if err != nil {
		return err
	}
	return s.tc.GET(expanded)
}

func (s *commonSteps) del(ctx context.Context, path string) error {
	expanded, err := s.tc.Expand(path)
	if err != nil {
		return err
	}
	return s.tc.DELETE(expanded)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if s.tc.LastStatus() != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)",
			expected, s.tc.LastStatus(), truncate(s.tc.LastBody()))
	}
	return nil
}

func (s *commonSteps) responseShouldContainField(ctx context.Context, field string) error {
	_, err := s.tc.ResponseField(field)
	return err
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, expected string) error {
	v, err := s.tc.ResponseField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", v)
	if actual != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (s *commonSteps) errorShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldEqual(ctx, "error", code)
}

func truncate(body []byte) string {
	const max = 512
	text := strings.TrimSpace(string(body))
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}
