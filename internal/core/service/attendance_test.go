package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/sheet"
)

func newAttendance(gw sheet.Gateway) *AttendanceService {
	return NewAttendanceService(gw, testDispatcher(), zerolog.Nop())
}

func TestAttendanceService_PunchSequence(t *testing.T) {
	gw := newStubGateway()
	svc := newAttendance(gw)
	ctx := context.Background()

	status, err := svc.Punch(ctx, testActor, domain.PunchIn)
	if err != nil {
		t.Fatalf("clock in failed: %v", err)
	}
	if !status.ClockedIn || status.OnBreak {
		t.Fatalf("unexpected status after clock in: %+v", status)
	}

	if status, err = svc.Punch(ctx, testActor, domain.PunchBreakStart); err != nil {
		t.Fatalf("break start failed: %v", err)
	}
	if !status.OnBreak {
		t.Fatalf("expected on break: %+v", status)
	}

	if status, err = svc.Punch(ctx, testActor, domain.PunchBreakEnd); err != nil {
		t.Fatalf("break end failed: %v", err)
	}
	if status.OnBreak || !status.ClockedIn {
		t.Fatalf("unexpected status after break end: %+v", status)
	}

	if status, err = svc.Punch(ctx, testActor, domain.PunchOut); err != nil {
		t.Fatalf("clock out failed: %v", err)
	}
	if status.ClockedIn {
		t.Fatalf("still clocked in after clock out: %+v", status)
	}
	if len(status.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(status.Entries))
	}
}

func TestAttendanceService_InvalidTransitions(t *testing.T) {
	gw := newStubGateway()
	svc := newAttendance(gw)
	ctx := context.Background()

	// The day starts with nothing; only clock-in may open it.
	if _, err := svc.Punch(ctx, testActor, domain.PunchOut); !errors.Is(err, domain.ErrInvalidPunch) {
		t.Fatalf("expected ErrInvalidPunch, got %v", err)
	}

	if _, err := svc.Punch(ctx, testActor, domain.PunchIn); err != nil {
		t.Fatalf("clock in failed: %v", err)
	}
	// Double clock-in is rejected.
	if _, err := svc.Punch(ctx, testActor, domain.PunchIn); !errors.Is(err, domain.ErrInvalidPunch) {
		t.Fatalf("expected ErrInvalidPunch for double clock in, got %v", err)
	}
	// Ending a break that never started is rejected.
	if _, err := svc.Punch(ctx, testActor, domain.PunchBreakEnd); !errors.Is(err, domain.ErrInvalidPunch) {
		t.Fatalf("expected ErrInvalidPunch for stray break end, got %v", err)
	}
}

func TestAttendanceService_UnknownPunch(t *testing.T) {
	svc := newAttendance(newStubGateway())
	if _, err := svc.Punch(context.Background(), testActor, domain.PunchType("lunch")); !errors.Is(err, domain.ErrUnknownPunch) {
		t.Fatalf("expected ErrUnknownPunch, got %v", err)
	}
}

func TestAttendanceService_DayRollover(t *testing.T) {
	gw := newStubGateway()
	svc := newAttendance(gw)
	ctx := context.Background()

	day1 := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return day1 }

	if _, err := svc.Punch(ctx, testActor, domain.PunchIn); err != nil {
		t.Fatalf("day1 clock in failed: %v", err)
	}

	// Next morning: yesterday's open log does not block a fresh clock-in.
	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	status, err := svc.Punch(ctx, testActor, domain.PunchIn)
	if err != nil {
		t.Fatalf("day2 clock in failed: %v", err)
	}
	if len(status.Entries) != 1 {
		t.Fatalf("day log not rolled over: %+v", status.Entries)
	}
}

func TestAttendanceService_SyncFailureSurfaces(t *testing.T) {
	gw := newStubGateway()
	gw.callErrs[sheet.ActionCreateAttendance] = &sheet.TransportError{Action: sheet.ActionCreateAttendance}
	svc := newAttendance(gw)
	ctx := context.Background()

	if _, err := svc.Punch(ctx, testActor, domain.PunchIn); err == nil {
		t.Fatalf("expected sync error")
	}

	// The local record stands: the worker did clock in.
	status, err := svc.Status(ctx, testActor)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.ClockedIn {
		t.Fatalf("local punch lost on sync failure")
	}
}

func TestAttendanceService_StatusEmptyDay(t *testing.T) {
	svc := newAttendance(newStubGateway())
	status, err := svc.Status(context.Background(), testActor)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.ClockedIn || status.OnBreak || len(status.Entries) != 0 {
		t.Fatalf("expected empty day, got %+v", status)
	}
}
