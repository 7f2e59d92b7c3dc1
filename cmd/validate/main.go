// Command validate checks the integrity of the built-in scenario registry and
// a hazard catalog before they are deployed. It verifies factor ranges,
// coordinates, dispatch tasks and keyword coverage, and reports profiles
// whose authored risk level disagrees with the computed one.
//
// Usage:
//
//	go run ./cmd/validate -catalog deploy/hazards.toml
//
// Without -catalog the built-in hazard catalog is checked.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/hazard-risk-engine/internal/alert"
	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/scenario"
)

// samples maps a representative scene label to the profile it must resolve to.
var samples = map[string]string{
	"structure_fire_and_crack.jpg": scenario.KeyFire,
	"IMG_flood_0931.png":           scenario.KeyFlood,
	"building_collapse.jpg":        scenario.KeyEarthquake,
	"road_crack_02.jpg":            scenario.KeyCrack,
	"volunteer_needed.png":         scenario.KeyRescue,
}

// phase tracks pass/fail for a validation phase. Notes are reported but do
// not fail the phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	catalogPath := flag.String("catalog", "", "path to a hazard catalog TOML file (defaults to the built-in catalog)")
	strict := flag.Bool("strict", false, "treat authored/computed risk level mismatches as errors")
	flag.Parse()

	if code := run(*catalogPath, *strict); code != 0 {
		os.Exit(code)
	}
}

func run(catalogPath string, strict bool) int {
	fmt.Println("=== Hazard Data Integrity Validation ===")
	fmt.Println()

	catalog := alert.DefaultCatalog()
	if catalogPath != "" {
		var err error
		catalog, err = alert.LoadCatalog(catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load hazard catalog: %v\n", err)
			return 1
		}
	}

	registry := scenario.DefaultRegistry()
	phases := []*phase{
		validateProfiles(registry, strict),
		validateClassifier(registry),
		validateCatalog(catalog),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d scenario profiles, %d catalog hazards\n", registry.Len(), len(catalog))

	for _, p := range phases {
		if len(p.notes) == 0 && p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Printf("  note: %s\n", n)
		}
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Scenario Profiles ──

func validateProfiles(registry *scenario.Registry, strict bool) *phase {
	p := &phase{name: "Phase 1: Scenario Profiles"}

	for _, key := range registry.Keys() {
		profile, _ := registry.Lookup(key)
		checkProfile(p, profile, strict)
	}
	return p
}

func checkProfile(p *phase, profile domain.ScenarioProfile, strict bool) {
	key := profile.Key

	if err := profile.RiskFactors.Validate(); err != nil {
		p.errorf("%s: %v", key, err)
		return
	}
	if err := profile.Location.Validate(); err != nil {
		p.errorf("%s: location: %v", key, err)
	}
	if strings.TrimSpace(profile.Summary) == "" {
		p.errorf("%s: summary is empty", key)
	}
	if len(profile.DispatchTasks) == 0 {
		p.errorf("%s: no dispatch tasks", key)
	}

	seen := map[string]bool{}
	for _, task := range profile.DispatchTasks {
		if task.ID == "" {
			p.errorf("%s: dispatch task with empty id", key)
		} else if seen[task.ID] {
			p.errorf("%s: duplicate dispatch task id %q", key, task.ID)
		}
		seen[task.ID] = true
		if err := task.Coordinates.Validate(); err != nil {
			p.errorf("%s: task %s: %v", key, task.ID, err)
		}
	}

	score, err := domain.Score(profile.RiskFactors)
	if err != nil {
		p.errorf("%s: score: %v", key, err)
		return
	}
	computed := domain.Classify(score)
	if computed != profile.RiskLevel {
		msg := fmt.Sprintf("%s: authored level %s, computed %s (score %d)", key, profile.RiskLevel, computed, score)
		if strict {
			p.errorf("%s", msg)
		} else {
			p.notef("%s", msg)
		}
	}
}

// ── Phase 2: Classifier Coverage ──

func validateClassifier(registry *scenario.Registry) *phase {
	p := &phase{name: "Phase 2: Classifier Coverage"}
	classifier := scenario.NewKeywordClassifier(registry)

	for label, want := range samples {
		profile, err := classifier.Classify(context.Background(), domain.Signal{Label: label})
		switch {
		case err != nil:
			p.errorf("%s: %v", label, err)
		case profile == nil:
			p.errorf("%s: no profile matched, expected %s", label, want)
		case profile.Key != want:
			p.errorf("%s: matched %s, expected %s", label, profile.Key, want)
		}
	}

	profile, err := classifier.Classify(context.Background(), domain.Signal{Label: "IMG_0001.jpg"})
	if err != nil || profile != nil {
		p.errorf("neutral label should yield standby, got profile=%v err=%v", profile, err)
	}
	return p
}

// ── Phase 3: Hazard Catalog ──

func validateCatalog(catalog []domain.HazardEvent) *phase {
	p := &phase{name: "Phase 3: Hazard Catalog"}

	if len(catalog) == 0 {
		p.notef("catalog is empty, only the live feed will raise alerts")
		return p
	}
	if err := alert.ValidateCatalog(catalog); err != nil {
		p.errorf("%v", err)
	}
	for i := range catalog {
		h := catalog[i]
		if strings.TrimSpace(h.Title) == "" {
			p.errorf("%s: title is empty", h.ID)
		}
		if h.RadiusKm > alert.FeedRadiusKm {
			p.notef("%s: radius %.0f km exceeds the live feed radius", h.ID, h.RadiusKm)
		}
	}
	return p
}
