package model

import "testing"

func TestGradeOrderCoversAllConfigs(t *testing.T) {
	if len(GradeOrder) != len(GradeConfigs) {
		t.Fatalf("order has %d grades, configs have %d", len(GradeOrder), len(GradeConfigs))
	}
	for _, g := range GradeOrder {
		if _, ok := GradeConfigs[g]; !ok {
			t.Errorf("grade %q in order but not in configs", g)
		}
	}
}

func TestExtendedGradeIsConfigured(t *testing.T) {
	if _, ok := GradeConfigs[ExtendedGrade]; !ok {
		t.Errorf("extended grade %q missing from configs", ExtendedGrade)
	}
}

func TestCanModerate(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleStudent, false},
		{RoleTeacher, true},
		{RoleAdmin, true},
		{"", false},
		{"guest", false},
	}
	for _, tt := range tests {
		if got := CanModerate(tt.role); got != tt.want {
			t.Errorf("CanModerate(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
