package steps

import (
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

func (w *outfittingWorld) registerCodeSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I encode the build$`, w.iEncodeTheBuild)
	ctx.Step(`^I decode "([^"]*)"$`, w.iDecode)
	ctx.Step(`^the build code should be "([^"]*)"$`, w.theBuildCodeShouldBe)
	ctx.Step(`^decoding the code should give the same build$`, w.decodingTheCodeShouldGiveTheSameBuild)
	ctx.Step(`^decoding should fail as "([^"]*)"$`, w.decodingShouldFailAs)
}

func (w *outfittingWorld) iEncodeTheBuild() error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	if w.err != nil {
		return fmt.Errorf("build has a rejected change: %w", w.err)
	}
	w.code = loadout.Encode(w.build)
	return nil
}

func (w *outfittingWorld) iDecode(code string) error {
	w.build, w.err = loadout.Decode(w.catalog, code)
	return nil
}

func (w *outfittingWorld) theBuildCodeShouldBe(expected string) error {
	if err := w.iEncodeTheBuild(); err != nil {
		return err
	}
	if w.code != expected {
		return fmt.Errorf("expected code %q, got %q", expected, w.code)
	}
	return nil
}

func (w *outfittingWorld) decodingTheCodeShouldGiveTheSameBuild() error {
	decoded, err := loadout.Decode(w.catalog, w.code)
	if err != nil {
		return fmt.Errorf("failed to decode %q: %w", w.code, err)
	}
	if reencoded := loadout.Encode(decoded); reencoded != w.code {
		return fmt.Errorf("re-encoded code %q differs from %q", reencoded, w.code)
	}
	if !reflect.DeepEqual(decoded.Stats(), w.build.Stats()) {
		return fmt.Errorf("decoded stats %+v differ from %+v", decoded.Stats(), w.build.Stats())
	}
	return nil
}

func (w *outfittingWorld) decodingShouldFailAs(kind string) error {
	if w.build != nil {
		return fmt.Errorf("expected decoding to fail, got a %s build", w.build.Ship().ID)
	}
	return expectBuildError(w.err, kind)
}
