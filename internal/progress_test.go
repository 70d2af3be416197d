package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressWithSteps(t *testing.T) {
	ran := 0
	steps := []ProgressStep{
		{Message: "Step 1", Fn: func() error { ran++; return nil }},
		{Message: "Step 2", Fn: func() error { ran++; return errors.New("step error") }},
		{Message: "Step 3", Fn: func() error { ran++; return nil }},
	}

	err := ShowProgressWithSteps(context.Background(), steps)
	if err == nil || !strings.Contains(err.Error(), "Step 2") {
		t.Errorf("ShowProgressWithSteps() error = %v, want the failing step named", err)
	}
	if ran != 2 {
		t.Errorf("%d steps ran, want 2", ran)
	}
}

func TestShowSpinner(t *testing.T) {
	var buf bytes.Buffer
	err := showSpinner(context.Background(), &buf, "Importing", func() error {
		time.Sleep(150 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("showSpinner() error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "Importing\n") || !strings.Contains(buf.String(), "✓") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestShowSpinner_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := showSpinner(ctx, &bytes.Buffer{}, "Testing", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("showSpinner() error = %v, want DeadlineExceeded", err)
	}
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "done")
	PrintInfo(&buf, "note")
	PrintError(&buf, "failed")
	PrintWarning(&buf, "careful")

	want := "done\nnote\nfailed\nWARNING: careful\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
