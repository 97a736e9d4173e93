package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(c.Achievements) != 7 {
		t.Errorf("expected 7 achievements, got %d", len(c.Achievements))
	}
	if len(c.Rewards) != 3 {
		t.Errorf("expected 3 rewards, got %d", len(c.Rewards))
	}
	if c.DefaultRewardIcon != "🎁" {
		t.Errorf("DefaultRewardIcon = %q", c.DefaultRewardIcon)
	}

	first := c.Achievements[0]
	if first.ID != "first_upload" || first.Title != "First Steps" || first.Requirements["total_uploads"] != 1 {
		t.Errorf("unexpected first achievement: %+v", first)
	}

	badge, ok := c.Reward("1")
	if !ok {
		t.Fatal("reward 1 missing")
	}
	if badge.Repeatable || badge.Cost != 50 {
		t.Errorf("unexpected badge reward: %+v", badge)
	}
	if _, ok := c.Reward("nope"); ok {
		t.Error("Reward(nope) found")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[[achievements]]
id = "hazard_hunter"
title = "Hazard Hunter"
icon = "☢️"
requirements = { hazardous_count = 3, total_uploads = 5 }
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Achievements) != 1 || len(c.Achievements[0].Requirements) != 2 {
		t.Errorf("unexpected achievements: %+v", c.Achievements)
	}
	if c.DefaultRewardIcon != "🎁" {
		t.Errorf("expected fallback icon, got %q", c.DefaultRewardIcon)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "duplicate achievement",
			data: `
[[achievements]]
id = "a"
title = "A"
requirements = { total_uploads = 1 }
[[achievements]]
id = "a"
title = "A again"
requirements = { total_uploads = 2 }
`,
			wantErr: "duplicate achievement",
		},
		{
			name: "no requirements",
			data: `
[[achievements]]
id = "a"
title = "A"
`,
			wantErr: "no requirements",
		},
		{
			name: "free reward",
			data: `
[[rewards]]
id = "r"
title = "R"
cost = 0
`,
			wantErr: "cost must be positive",
		},
		{
			name:    "unknown field",
			data:    `colour = "green"`,
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
