package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/delivery"
	"slate/internal/logging"
	"slate/internal/shots"
	"slate/internal/testsupport"
)

func deliveryFixture(t *testing.T) (*testsupport.FakeCatalog, *delivery.Linker, *shots.DeliveryInfo) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeCatalog()
	linker := delivery.NewLinker(cfg, fake, logging.NewNop())

	pattern := filepath.Join(t.TempDir(), "plate.%04d.exr")
	info := &shots.DeliveryInfo{
		Sequence:      "010",
		Shot:          "0010",
		ID:            7563,
		FirstFrame:    1001,
		LastFrame:     1003,
		SequencePath:  pattern,
		VersionNumber: 3,
		ProjectCode:   "NFA",
	}
	return fake, linker, info
}

func TestDeliverLinksClosedRangeAndUpdatesStatus(t *testing.T) {
	fake, linker, info := deliveryFixture(t)
	testsupport.WriteFrames(t, info.SequencePath, 1001, 1002, 1003)

	var reported []int
	result := linker.Deliver(context.Background(), info, func(frame int) {
		reported = append(reported, frame)
	})

	if !result.Delivered() {
		t.Fatalf("expected delivered outcome, got %+v", result)
	}
	if result.FramesLinked != 3 {
		t.Fatalf("expected 3 linked frames (closed range), got %d", result.FramesLinked)
	}
	if len(reported) != 3 || reported[0] != 1001 || reported[2] != 1003 {
		t.Fatalf("unexpected progress frames: %v", reported)
	}
	if info.FramesDelivered != 1003 {
		t.Fatalf("unexpected FramesDelivered: %d", info.FramesDelivered)
	}

	deliveryPath, err := linker.DeliveryPath(info)
	if err != nil {
		t.Fatalf("DeliveryPath: %v", err)
	}
	for frame := 1001; frame <= 1003; frame++ {
		linked := fmt.Sprintf(deliveryPath, frame)
		if _, err := os.Stat(linked); err != nil {
			t.Fatalf("expected linked frame %d at %s: %v", frame, linked, err)
		}
	}

	status, ok := fake.StatusOf(7563)
	if !ok || status != "dlvr" {
		t.Fatalf("expected delivered status update, got %q ok=%v", status, ok)
	}
	if info.ValidationMessage != "Export finished!" {
		t.Fatalf("unexpected message: %q", info.ValidationMessage)
	}
}

func TestDeliverRendersTemplatedPath(t *testing.T) {
	_, linker, info := deliveryFixture(t)
	path, err := linker.DeliveryPath(info)
	if err != nil {
		t.Fatalf("DeliveryPath: %v", err)
	}
	if !strings.Contains(path, filepath.Join("NFA", "010", "0010")) {
		t.Fatalf("expected templated folder layout, got %q", path)
	}
	if !strings.Contains(path, "NFA_010_0010_v003.%04d.exr") {
		t.Fatalf("expected templated file name with version, got %q", path)
	}
}

func TestDeliverCollisionReportsAlreadyExported(t *testing.T) {
	fake, linker, info := deliveryFixture(t)
	testsupport.WriteFrames(t, info.SequencePath, 1001, 1002, 1003)

	deliveryPath, err := linker.DeliveryPath(info)
	if err != nil {
		t.Fatalf("DeliveryPath: %v", err)
	}
	// Pre-existing first destination frame, as after an earlier export.
	testsupport.WriteFile(t, fmt.Sprintf(deliveryPath, 1001))

	result := linker.Deliver(context.Background(), info, nil)
	if result.Outcome != delivery.OutcomeAlreadyExported {
		t.Fatalf("expected already-exported outcome, got %+v", result)
	}
	if !strings.Contains(result.Message, "already exist") {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if _, ok := fake.StatusOf(7563); ok {
		t.Fatal("catalog status must stay untouched on collision")
	}
	if info.ValidationError == "" {
		t.Fatal("expected advisory error on shot info")
	}
}

func TestDeliverPartialFailureLeavesLinkedFrames(t *testing.T) {
	fake, linker, info := deliveryFixture(t)
	// Frame 1003 missing on source: linking fails mid-run.
	testsupport.WriteFrames(t, info.SequencePath, 1001, 1002)

	result := linker.Deliver(context.Background(), info, nil)
	if result.Outcome != delivery.OutcomeLinkFailed {
		t.Fatalf("expected link-failed outcome, got %+v", result)
	}
	if result.FramesLinked != 2 {
		t.Fatalf("expected 2 frames linked before failure, got %d", result.FramesLinked)
	}

	deliveryPath, err := linker.DeliveryPath(info)
	if err != nil {
		t.Fatalf("DeliveryPath: %v", err)
	}
	for _, frame := range []int{1001, 1002} {
		if _, statErr := os.Stat(fmt.Sprintf(deliveryPath, frame)); statErr != nil {
			t.Fatalf("frame %d should remain linked after failure: %v", frame, statErr)
		}
	}
	if _, ok := fake.StatusOf(7563); ok {
		t.Fatal("catalog status must stay untouched on failure")
	}
}

func TestDeliverCatalogFailureAfterLinking(t *testing.T) {
	fake, linker, info := deliveryFixture(t)
	testsupport.WriteFrames(t, info.SequencePath, 1001, 1002, 1003)
	fake.UpdateErr = errors.New("catalog down")

	result := linker.Deliver(context.Background(), info, nil)
	if result.Outcome != delivery.OutcomeCatalogFailed {
		t.Fatalf("expected catalog-failed outcome, got %+v", result)
	}
	if result.FramesLinked != 3 {
		t.Fatalf("expected all frames linked, got %d", result.FramesLinked)
	}
}

func TestDeliverSingleFrameShotLinksOneFile(t *testing.T) {
	fake, linker, info := deliveryFixture(t)
	info.LastFrame = info.FirstFrame
	testsupport.WriteFrames(t, info.SequencePath, 1001)

	result := linker.Deliver(context.Background(), info, nil)
	if !result.Delivered() || result.FramesLinked != 1 {
		t.Fatalf("expected single-frame delivery, got %+v", result)
	}
	if status, ok := fake.StatusOf(7563); !ok || status != "dlvr" {
		t.Fatalf("expected status update, got %q ok=%v", status, ok)
	}
}
