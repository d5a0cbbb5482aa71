package e2e

import (
	"github.com/cucumber/godog"

	"callsync/e2e/steps/common"
	"callsync/e2e/steps/imports"
	"callsync/e2e/steps/matching"
	"callsync/e2e/steps/recordings"
)

// RegisterSteps registers all step definitions from the modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background, generic requests, and assertions.
	common.RegisterSteps(ctx, tc)

	recordings.RegisterSteps(ctx, tc)
	imports.RegisterSteps(ctx, tc)
	matching.RegisterSteps(ctx, tc)
}
