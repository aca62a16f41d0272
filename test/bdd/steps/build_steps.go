package steps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

func (w *outfittingWorld) registerBuildSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a stock "([^"]*)" build$`, w.aStockBuild)
	ctx.Step(`^I fit "([^"]*)" to "([^"]*)"$`, w.iFitTo)
	ctx.Step(`^I empty "([^"]*)"$`, w.iEmpty)
	ctx.Step(`^I select bulkhead (\d+)$`, w.iSelectBulkhead)
	ctx.Step(`^I revert "([^"]*)" to stock$`, w.iRevertToStock)
	ctx.Step(`^I toggle the power of "([^"]*)"$`, w.iToggleThePowerOf)
	ctx.Step(`^I toggle the cost of "([^"]*)"$`, w.iToggleTheCostOf)
	ctx.Step(`^I modify "([^"]*)" "([^"]*)" by (-?[\d.]+)$`, w.iModifyBy)

	ctx.Step(`^the retrofit total should be (-?\d+) credits$`, w.theRetrofitTotalShouldBe)
	ctx.Step(`^there should be (\d+) retrofit changes$`, w.thereShouldBeRetrofitChanges)
	ctx.Step(`^the retrofit changes should be "([^"]*)"$`, w.theRetrofitChangesShouldBe)
	ctx.Step(`^the change should be rejected as "([^"]*)"$`, w.theChangeShouldBeRejectedAs)
}

func (w *outfittingWorld) aStockBuild(shipID string) error {
	build, err := outfitting.NewBuild(w.catalog, shipID)
	if err != nil {
		return err
	}
	w.build = build
	return nil
}

// mutate applies fn to the slot named by slot, keeping the outcome for the
// rejection steps
func (w *outfittingWorld) mutate(slot string, fn func(ref outfitting.SlotRef) error) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	ref, err := outfitting.ParseSlotRef(slot)
	if err != nil {
		return err
	}
	w.err = fn(ref)
	return nil
}

func (w *outfittingWorld) iFitTo(componentID, slot string) error {
	return w.mutate(slot, func(ref outfitting.SlotRef) error {
		return w.build.Select(ref, componentID)
	})
}

func (w *outfittingWorld) iEmpty(slot string) error {
	return w.iFitTo(outfitting.Unassigned, slot)
}

func (w *outfittingWorld) iSelectBulkhead(index int) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	w.err = w.build.SelectBulkhead(index)
	return nil
}

func (w *outfittingWorld) iRevertToStock(slot string) error {
	stock, err := outfitting.NewBuild(w.catalog, w.build.Ship().ID)
	if err != nil {
		return err
	}
	return w.mutate(slot, func(ref outfitting.SlotRef) error {
		original, err := stock.Slot(ref)
		if err != nil {
			return err
		}
		return w.build.Select(ref, original.ComponentID())
	})
}

func (w *outfittingWorld) iToggleThePowerOf(slot string) error {
	return w.mutate(slot, w.build.ToggleEnabled)
}

func (w *outfittingWorld) iToggleTheCostOf(slot string) error {
	return w.mutate(slot, w.build.ToggleCost)
}

func (w *outfittingWorld) iModifyBy(slot, modification string, value float64) error {
	return w.mutate(slot, func(ref outfitting.SlotRef) error {
		return w.build.ApplyModification(ref, outfitting.ModificationID(modification), value)
	})
}

func (w *outfittingWorld) theRetrofitTotalShouldBe(expected int64) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	if actual := w.build.Stats().RetrofitTotal; actual != expected {
		return fmt.Errorf("expected retrofit total %d, got %d", expected, actual)
	}
	return nil
}

func (w *outfittingWorld) thereShouldBeRetrofitChanges(expected int) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	if actual := len(w.build.Stats().RetrofitChanges); actual != expected {
		return fmt.Errorf("expected %d retrofit changes, got %d", expected, actual)
	}
	return nil
}

func (w *outfittingWorld) theRetrofitChangesShouldBe(expected string) error {
	if err := w.requireBuild(); err != nil {
		return err
	}
	var slots []string
	for _, change := range w.build.Stats().RetrofitChanges {
		slots = append(slots, change.Slot.String())
	}
	if actual := strings.Join(slots, ", "); actual != expected {
		return fmt.Errorf("expected retrofit changes %q, got %q", expected, actual)
	}
	return nil
}

func (w *outfittingWorld) theChangeShouldBeRejectedAs(kind string) error {
	return expectBuildError(w.err, kind)
}

// expectBuildError checks err against a readable error kind used in features
func expectBuildError(err error, kind string) error {
	if err == nil {
		return fmt.Errorf("expected a %s error, got none", kind)
	}

	var target interface{}
	switch kind {
	case "class out of range":
		target = new(*shared.ClassOutOfRangeError)
	case "invalid component":
		target = new(*shared.InvalidComponentForSlotError)
	case "invalid modification":
		target = new(*shared.InvalidModificationError)
	case "malformed code":
		target = new(*shared.MalformedCodeError)
	case "unknown ship":
		target = new(*shared.UnknownShipError)
	case "unknown component":
		target = new(*shared.UnknownComponentReferenceError)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}

	if !errors.As(err, target) {
		return fmt.Errorf("expected a %s error, got %T: %v", kind, err, err)
	}
	return nil
}
