package internal

import (
	"testing"
	"time"
)

func TestRunSelfTest(t *testing.T) {
	report := RunSelfTest(NewNormalizer())

	if len(report.Valid) != len(SupportedFormats()) {
		t.Errorf("Valid cases = %d, want %d", len(report.Valid), len(SupportedFormats()))
	}
	if len(report.Invalid) != len(InvalidFormats()) {
		t.Errorf("Invalid cases = %d, want %d", len(report.Invalid), len(InvalidFormats()))
	}
	for _, c := range report.Failures() {
		t.Errorf("case %q failed: %s", c.Name, c.Problem)
	}
	if !report.Passed() {
		t.Error("RunSelfTest() should pass")
	}

	for _, c := range report.Valid {
		if c.Message == nil {
			t.Errorf("case %q produced no message", c.Name)
		}
	}
	for _, c := range report.Invalid {
		if c.Err == nil {
			t.Errorf("case %q produced no rejection reason", c.Name)
		}
	}
}

func TestRunSelfTest_IndependentOfClock(t *testing.T) {
	// every supported format carries its own timestamp
	n := NewNormalizer().WithClock(func() time.Time { return time.Unix(0, 0) })
	if report := RunSelfTest(n); !report.Passed() {
		t.Errorf("RunSelfTest() failures = %+v", report.Failures())
	}
}

func TestCheckCanonical(t *testing.T) {
	good := &Message{
		Content:   "Conteúdo da mensagem",
		SenderID:  123,
		GroupID:   SelfTestGroup,
		CreatedAt: time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC),
		Source:    SourceWebSocket,
	}
	if p := checkCanonical(good); p != "" {
		t.Errorf("checkCanonical(good) = %q", p)
	}

	bad := *good
	bad.SenderID = 1
	if p := checkCanonical(&bad); p == "" {
		t.Error("checkCanonical() should report a wrong sender")
	}

	bad = *good
	bad.CreatedAt = bad.CreatedAt.Add(time.Second)
	if p := checkCanonical(&bad); p == "" {
		t.Error("checkCanonical() should report a wrong timestamp")
	}
}
