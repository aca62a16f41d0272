package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

func (w *outfittingWorld) registerSavedBuildSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I save the build as "([^"]*)"$`, w.iSaveTheBuildAs)
	ctx.Step(`^I delete "([^"]*)" build "([^"]*)"$`, w.iDeleteBuild)
	ctx.Step(`^saving should fail$`, w.savingShouldFail)
	ctx.Step(`^loading "([^"]*)" build "([^"]*)" should give the same build$`, w.loadingBuildShouldGiveTheSameBuild)
	ctx.Step(`^loading "([^"]*)" build "([^"]*)" should fail as "not found"$`, w.loadingBuildShouldFailAsNotFound)
	ctx.Step(`^the "([^"]*)" builds should be "([^"]*)"$`, w.theBuildsShouldBe)
}

func (w *outfittingWorld) iSaveTheBuildAs(name string) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	_, w.err = w.mediator.Send(context.Background(), &commands.SaveBuildCommand{
		Name: name,
		Code: loadout.Encode(w.build),
	})
	return nil
}

func (w *outfittingWorld) iDeleteBuild(shipID, name string) error {
	_, err := w.mediator.Send(context.Background(), &commands.DeleteBuildCommand{ShipID: shipID, Name: name})
	return err
}

func (w *outfittingWorld) savingShouldFail() error {
	if w.err == nil {
		return fmt.Errorf("expected saving to fail")
	}
	return nil
}

func (w *outfittingWorld) loadingBuildShouldGiveTheSameBuild(shipID, name string) error {
	if w.err != nil {
		return fmt.Errorf("previous step failed: %w", w.err)
	}
	result, err := w.mediator.Send(context.Background(), &queries.LoadBuildQuery{ShipID: shipID, Name: name})
	if err != nil {
		return err
	}
	loaded := result.(*queries.LoadBuildResponse)
	expected := loadout.Encode(w.build)
	if loaded.Saved.Code != expected {
		return fmt.Errorf("expected saved code %q, got %q", expected, loaded.Saved.Code)
	}
	if actual := loadout.Encode(loaded.Build); actual != expected {
		return fmt.Errorf("expected loaded build %q, got %q", expected, actual)
	}
	return nil
}

func (w *outfittingWorld) loadingBuildShouldFailAsNotFound(shipID, name string) error {
	_, err := w.mediator.Send(context.Background(), &queries.LoadBuildQuery{ShipID: shipID, Name: name})
	var notFound *loadout.ErrSavedBuildNotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("expected a not found error, got %v", err)
	}
	return nil
}

func (w *outfittingWorld) theBuildsShouldBe(shipID, expected string) error {
	result, err := w.mediator.Send(context.Background(), &queries.ListBuildsQuery{ShipID: shipID})
	if err != nil {
		return err
	}
	var names []string
	for _, b := range result.(*queries.ListBuildsResponse).Builds {
		names = append(names, b.Name)
	}
	if actual := strings.Join(names, ", "); actual != expected {
		return fmt.Errorf("expected %s builds %q, got %q", shipID, expected, actual)
	}
	return nil
}
