package main

import (
	"context"
	"fmt"
	"os"
	"testing"

	"slate/internal/journal"
)

func TestDeliverLinksFramesAndReportsSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	seedReadyShot(t, env.fake, 7563, "0010", 1001, 1002, 1003)

	out, _, err := runCLI(t, []string{"deliver"}, env.fake, env.configPath)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	requireContains(t, out, "Delivering 1 shots")
	requireContains(t, out, "Export finished!")
	requireContains(t, out, "Delivered 1 of 1 shots")

	if status, ok := env.fake.StatusOf(7563); !ok || status != env.cfg.Catalog.DeliveredStatus {
		t.Fatalf("expected delivered status, got %q", status)
	}

	// The linked frame files must exist under the delivery root.
	deliveredFrame := fmt.Sprintf(
		"%s/NFA/010/0010/NFA_010_0010_v003.%04d.exr",
		env.cfg.Paths.DeliveryRoot, 1001,
	)
	if _, err := os.Stat(deliveredFrame); err != nil {
		t.Fatalf("expected delivered frame at %s: %v", deliveredFrame, err)
	}
}

func TestDeliverReportsValidationFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	seedReadyShot(t, env.fake, 7563, "0010") // no frames written: validation must fail

	out, _, err := runCLI(t, []string{"deliver"}, env.fake, env.configPath)
	if err == nil {
		t.Fatal("expected deliver to report a failure")
	}
	requireContains(t, out, "Can't find frame 1001. Does it exist on disk?")
	if _, ok := env.fake.StatusOf(7563); ok {
		t.Fatal("catalog status must not change for a failed shot")
	}
}

func TestHistoryShowsJournaledDeliveries(t *testing.T) {
	env := setupCLITestEnv(t)
	seedReadyShot(t, env.fake, 7563, "0010", 1001, 1002, 1003)

	if _, _, err := runCLI(t, []string{"deliver"}, env.fake, env.configPath); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.fake, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "0010")
	requireContains(t, out, "delivered")

	store, err := journal.OpenPath(env.cfg.Journal.Path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()
	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("journal Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(entries))
	}
}
