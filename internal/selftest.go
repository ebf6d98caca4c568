package internal

import (
	"errors"
	"fmt"
	"time"
)

// SelfTestGroup is the group every self-test payload is checked against
const SelfTestGroup int64 = 456

var selfTestCreatedAt = time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

// SelfTestCase is the outcome of running one example payload
type SelfTestCase struct {
	Name         string
	Payload      any
	ExpectAccept bool
	Report       FormatReport
	Message      *Message
	Err          error
	Problem      string // empty when the case behaved as expected
}

// Passed reports whether the case behaved as expected
func (c SelfTestCase) Passed() bool {
	return c.Problem == ""
}

// SelfTestReport collects the self-test results
type SelfTestReport struct {
	Valid   []SelfTestCase
	Invalid []SelfTestCase
}

// Failures returns the cases that did not behave as expected
func (r *SelfTestReport) Failures() []SelfTestCase {
	var failed []SelfTestCase
	for _, c := range append(append([]SelfTestCase{}, r.Valid...), r.Invalid...) {
		if !c.Passed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Passed reports whether every case behaved as expected
func (r *SelfTestReport) Passed() bool {
	return len(r.Failures()) == 0
}

// RunSelfTest runs every supported and invalid example format through the
// normalizer and checks the outcome
func RunSelfTest(n *Normalizer) *SelfTestReport {
	report := &SelfTestReport{}
	for _, f := range SupportedFormats() {
		c := runCase(n, f, true)
		if c.Message != nil && c.Problem == "" {
			c.Problem = checkCanonical(c.Message)
		}
		report.Valid = append(report.Valid, c)
	}
	for _, f := range InvalidFormats() {
		report.Invalid = append(report.Invalid, runCase(n, f, false))
	}
	return report
}

func runCase(n *Normalizer, f NamedPayload, expectAccept bool) SelfTestCase {
	c := SelfTestCase{Name: f.Name, Payload: f.Payload, ExpectAccept: expectAccept}
	c.Report = n.ValidateFormat(f.Payload)
	c.Message, c.Err = n.Explain(f.Payload, SelfTestGroup)
	switch {
	case expectAccept && c.Message == nil:
		c.Problem = fmt.Sprintf("expected a message, got %v", c.Err)
	case !expectAccept && c.Message != nil:
		c.Problem = "expected rejection, got a message"
	case c.Message != nil && !c.Report.Valid(),
		c.Message == nil && c.Report.Valid() && !isScopeMismatch(c.Err):
		c.Problem = "format probe disagrees with normalizer"
	}
	return c
}

func checkCanonical(m *Message) string {
	switch {
	case m.Content != "Conteúdo da mensagem":
		return fmt.Sprintf("content = %q", m.Content)
	case m.SenderID != 123:
		return fmt.Sprintf("senderId = %d, want 123", m.SenderID)
	case m.GroupID != SelfTestGroup:
		return fmt.Sprintf("groupId = %d, want %d", m.GroupID, SelfTestGroup)
	case !m.CreatedAt.Equal(selfTestCreatedAt):
		return fmt.Sprintf("createdAt = %s, want %s", m.CreatedAt.Format(time.RFC3339), selfTestCreatedAt.Format(time.RFC3339))
	case m.Source != SourceWebSocket:
		return fmt.Sprintf("source = %q", m.Source)
	}
	return ""
}

func isScopeMismatch(err error) bool {
	var re *RejectError
	return errors.As(err, &re) && re.Reason == ReasonScopeMismatch
}
