package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

func TestTimelineStepFor(t *testing.T) {
	tests := []struct {
		action domain.Action
		want   domain.TimelineStep
	}{
		{domain.ActionSubmit, domain.StepSubmission},
		{domain.ActionWithdraw, domain.StepSubmission},
		{domain.ActionCancel, domain.StepSubmission},
		{domain.ActionApprove, domain.StepApproval},
		{domain.ActionReject, domain.StepApproval},
		{domain.ActionTransfer, domain.StepTransfer},
		{domain.ActionIssue, domain.StepInbound},
		{domain.ActionResolveIssue, domain.StepInbound},
		{domain.ActionPay, domain.StepPayment},
		{domain.ActionSubmitReimbursement, domain.StepPayment},
		{domain.ActionDuplicate, domain.StepOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TimelineStepFor(tt.action, domain.StatusDraft, domain.StatusDraft))
		})
	}
}

func TestBuildTimeline(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	entry := func(minute int, action domain.Action) domain.AuditLogEntry {
		return domain.AuditLogEntry{
			RequestID: "req-1",
			Action:    action,
			CreatedAt: base.Add(time.Duration(minute) * time.Minute),
		}
	}

	t.Run("contiguous runs group together", func(t *testing.T) {
		entries := []domain.AuditLogEntry{
			entry(0, domain.ActionSubmit),
			entry(1, domain.ActionApprove),
			entry(2, domain.ActionApprove),
			entry(3, domain.ActionPay),
		}

		groups := domain.BuildTimeline(entries)
		require.Len(t, groups, 3)
		assert.Equal(t, domain.StepSubmission, groups[0].Step)
		assert.Equal(t, domain.StepApproval, groups[1].Step)
		assert.Len(t, groups[1].Entries, 2)
		assert.Equal(t, domain.StepPayment, groups[2].Step)
	})

	t.Run("transfer splits approval runs", func(t *testing.T) {
		entries := []domain.AuditLogEntry{
			entry(0, domain.ActionSubmit),
			entry(1, domain.ActionApprove),
			entry(2, domain.ActionTransfer),
			entry(3, domain.ActionApprove),
		}

		groups := domain.BuildTimeline(entries)
		require.Len(t, groups, 4)
		assert.Equal(t, domain.StepApproval, groups[1].Step)
		assert.Equal(t, domain.StepTransfer, groups[2].Step)
		assert.Equal(t, domain.StepApproval, groups[3].Step)
	})

	t.Run("grouping is deterministic", func(t *testing.T) {
		entries := []domain.AuditLogEntry{
			entry(0, domain.ActionSubmit),
			entry(1, domain.ActionReject),
		}
		assert.Equal(t, domain.BuildTimeline(entries), domain.BuildTimeline(entries))
	})

	t.Run("empty log yields empty timeline", func(t *testing.T) {
		assert.Empty(t, domain.BuildTimeline(nil))
	})
}
