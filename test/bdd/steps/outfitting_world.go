package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/reference"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/schema"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

// outfittingWorld is the state shared by the build, code and saved build steps
type outfittingWorld struct {
	catalog  *catalog.Catalog
	mediator mediator.Mediator

	build *outfitting.Build
	code  string
	err   error
}

func (w *outfittingWorld) reset() error {
	w.build = nil
	w.code = ""
	w.err = nil

	if w.catalog == nil {
		cat, err := reference.Load()
		if err != nil {
			return fmt.Errorf("failed to load reference catalog: %w", err)
		}
		w.catalog = cat
	}

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	repo := persistence.NewGormSavedBuildRepository(helpers.SharedTestDB)
	clock := helpers.NewFixedClock()

	m := mediator.NewMediator()
	for _, err := range []error{
		mediator.RegisterHandler[*commands.SaveBuildCommand](m, commands.NewSaveBuildHandler(w.catalog, repo, validator, clock)),
		mediator.RegisterHandler[*commands.DeleteBuildCommand](m, commands.NewDeleteBuildHandler(repo)),
		mediator.RegisterHandler[*queries.LoadBuildQuery](m, queries.NewLoadBuildHandler(w.catalog, repo)),
		mediator.RegisterHandler[*queries.ListBuildsQuery](m, queries.NewListBuildsHandler(repo)),
	} {
		if err != nil {
			return err
		}
	}
	w.mediator = m
	return nil
}

func (w *outfittingWorld) requireBuild() error {
	if w.build == nil {
		return fmt.Errorf("no build in this scenario")
	}
	return nil
}

// InitializeOutfittingScenario registers the build, build code and saved build steps
func InitializeOutfittingScenario(ctx *godog.ScenarioContext) {
	w := &outfittingWorld{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, w.reset()
	})

	w.registerBuildSteps(ctx)
	w.registerCodeSteps(ctx)
	w.registerSavedBuildSteps(ctx)
}
