package entity

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		label  string
		want   WasteCategory
		wantOK bool
	}{
		{"recyclable", CategoryRecyclable, true},
		{"Recyclable", CategoryRecyclable, true},
		{"Recyclable Waste", CategoryRecyclable, true},
		{"organic", CategoryOrganic, true},
		{" Organic Waste ", CategoryOrganic, true},
		{"hazardous", CategoryHazardous, true},
		{"HAZARDOUS", CategoryHazardous, true},
		{"non_recyclable", CategoryNonRecyclable, true},
		{"Non-Recyclable", CategoryNonRecyclable, true},
		{"non recyclable", CategoryNonRecyclable, true},
		{"Non-Recyclable Waste", CategoryNonRecyclable, true},
		{"e-waste", WasteCategory("e-waste"), false},
		{"  glass ", WasteCategory("glass"), false},
		{"", WasteCategory(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.label)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeCategory(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeCategoryIsIdempotent(t *testing.T) {
	for _, c := range Categories {
		got, ok := NormalizeCategory(string(c))
		if !ok || got != c {
			t.Errorf("canonical %q normalized to (%q, %v)", c, got, ok)
		}
	}
}

func TestUserPointsSpent(t *testing.T) {
	u := User{Redemptions: []Redemption{{PointsSpent: 50}, {PointsSpent: 150}}}
	if got := u.PointsSpent(); got != 200 {
		t.Errorf("PointsSpent() = %d, want 200", got)
	}
	if u.HasAchievement("first_upload") {
		t.Error("HasAchievement() on empty set = true")
	}
}

func TestWasteRecordLabelColumnsAreUnbounded(t *testing.T) {
	s, err := schema.Parse(&WasteRecord{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatal(err)
	}

	// unknown classifier labels are stored as-is, whatever their length
	for _, name := range []string{"WasteType", "RawLabel"} {
		f := s.LookUpField(name)
		if f == nil {
			t.Fatalf("field %s missing", name)
		}
		if f.Size != 0 || f.TagSettings["TYPE"] != "text" {
			t.Errorf("%s: size %d type %q, want unbounded text", name, f.Size, f.TagSettings["TYPE"])
		}
	}
}
