package model

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"task-service.com/task-service/internal/constants"
)

func TestTaskPatch_AssignmentsOnlyCarriesSetFields(t *testing.T) {
	status := constants.StatusDone
	patch := &TaskPatch{Status: &status}

	set := patch.Assignments()
	if len(set) != 1 {
		t.Fatalf("expected 1 assignment, got %d: %v", len(set), set)
	}
	if set["status"] != constants.StatusDone {
		t.Errorf("expected status %s, got %v", constants.StatusDone, set["status"])
	}
}

func TestTaskPatch_EstimateDateTruncatedToSeconds(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 15, 987654321, time.FixedZone("x", 3600))
	patch := &TaskPatch{EstimateDate: &at}

	got, ok := patch.Assignments()["estimate_date"].(time.Time)
	if !ok {
		t.Fatal("expected estimate_date assignment")
	}
	if got.Nanosecond() != 0 {
		t.Errorf("expected second precision, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
	if !got.Equal(at.Truncate(time.Second)) {
		t.Errorf("expected %v, got %v", at.Truncate(time.Second), got)
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	if !(&TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}

	var nilPatch *TaskPatch
	if !nilPatch.IsEmpty() {
		t.Error("nil patch should be empty")
	}

	id := uuid.New()
	if (&TaskPatch{AssignToUserID: &id}).IsEmpty() {
		t.Error("patch with assignee should not be empty")
	}
}
