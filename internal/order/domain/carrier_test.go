package domain

import "testing"

func TestDetectCarrier(t *testing.T) {
	cases := []struct {
		phone string
		want  Carrier
	}{
		{"13800138000", CarrierMobile},
		{"15912345678", CarrierMobile},
		{"13012345678", CarrierUnicom},
		{"18612345678", CarrierUnicom},
		{"13312345678", CarrierTelecom},
		{"18912345678", CarrierTelecom},
		{"+8613800138000", CarrierMobile},
		{"8613312345678", CarrierTelecom},
		{"12345678901", CarrierUnknown},
		{"12", CarrierUnknown},
		{"", CarrierUnknown},
	}
	for _, tc := range cases {
		if got := DetectCarrier(tc.phone); got != tc.want {
			t.Errorf("DetectCarrier(%q) = %s, want %s", tc.phone, got, tc.want)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusFailed, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusFailed, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusFailed, OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
