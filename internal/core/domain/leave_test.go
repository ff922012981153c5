package domain

import "testing"

func TestLeaveStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to LeaveStatus
		want     bool
	}{
		{LeavePending, LeaveApproved, true},
		{LeavePending, LeaveRejected, true},
		{LeavePending, LeavePending, false},
		{LeaveApproved, LeaveRejected, false},
		{LeaveApproved, LeavePending, false},
		{LeaveRejected, LeaveApproved, false},
		{LeaveRejected, LeavePending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestLeaveStatus_Terminal(t *testing.T) {
	if LeavePending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !LeaveApproved.Terminal() {
		t.Error("approved must be terminal")
	}
	if !LeaveRejected.Terminal() {
		t.Error("rejected must be terminal")
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"1", "2", "3", "4"} {
		if _, ok := ParseRole(s); !ok {
			t.Errorf("ParseRole(%q) not ok", s)
		}
	}
	for _, s := range []string{"0", "5", "", "manager"} {
		if _, ok := ParseRole(s); ok {
			t.Errorf("ParseRole(%q) unexpectedly ok", s)
		}
	}
}
