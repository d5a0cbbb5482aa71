package imports

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context the import steps need.
type TestContext interface {
	POSTRaw(path, contentType string, body []byte) error
	ResponseField(field string) (interface{}, error)
	Save(alias, value string)
}

// RegisterSteps wires CSV import steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &importSteps{tc: tc}

	ctx.Step(`^I upload a CSV export:$`, steps.uploadCSV)
	ctx.Step(`^I save the import id as "([^"]*)"$`, steps.saveImportID)
}

type importSteps struct {
	tc TestContext
}

func (s *importSteps) uploadCSV(ctx context.Context, doc *godog.DocString) error {
	return s.tc.POSTRaw("/v1/imports", "text/csv", []byte(doc.Content))
}

func (s *importSteps) saveImportID(ctx context.Context, alias string) error {
	v, err := s.tc.ResponseField("import_id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok {
		return fmt.Errorf("import id is not a string: %v", v)
	}
	s.tc.Save(alias, id)
	return nil
}
