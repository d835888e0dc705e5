package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"trainingload/internal/analysis"
	"trainingload/internal/config"
	"trainingload/internal/service"
)

func TestNewTimeConstants_KeepsConfiguredValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TrendConfig
	}{
		{"defaults", config.TrendConfig{CTLDays: 42, ATLDays: 7}},
		{"below slider range", config.TrendConfig{CTLDays: 3, ATLDays: 1}},
		{"above slider range", config.TrendConfig{CTLDays: 180, ATLDays: 45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTimeConstants(tt.cfg)
			if tc.CTLDays != tt.cfg.CTLDays {
				t.Errorf("CTLDays = %d, want %d", tc.CTLDays, tt.cfg.CTLDays)
			}
			if tc.ATLDays != tt.cfg.ATLDays {
				t.Errorf("ATLDays = %d, want %d", tc.ATLDays, tt.cfg.ATLDays)
			}
		})
	}
}

func TestTimeConstants_AdjustOutsideRange(t *testing.T) {
	tests := []struct {
		name  string
		tc    TimeConstants
		ctl   int
		atl   int
		wantC int
		wantA int
	}{
		{"ctl below range moves up", TimeConstants{CTLDays: 3, ATLDays: 7}, 1, 0, 4, 7},
		{"ctl below range holds going down", TimeConstants{CTLDays: 3, ATLDays: 7}, -1, 0, 3, 7},
		{"atl above range moves down", TimeConstants{CTLDays: 42, ATLDays: 45}, 0, -1, 42, 44},
		{"atl above range holds going up", TimeConstants{CTLDays: 42, ATLDays: 45}, 0, 1, 42, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tc.AdjustCTL(tt.ctl).AdjustATL(tt.atl)
			if got.CTLDays != tt.wantC || got.ATLDays != tt.wantA {
				t.Errorf("adjusted = %d/%d, want %d/%d", got.CTLDays, got.ATLDays, tt.wantC, tt.wantA)
			}
		})
	}
}

func TestDashboard_LoadsConfiguredConstants(t *testing.T) {
	qs := service.NewQueryService(t.TempDir(), analysis.DefaultPaceOptions(), 1)
	tc := NewTimeConstants(config.TrendConfig{CTLDays: 3, ATLDays: 45})
	m := NewDashboardModel(qs, NewUnits(config.DisplayConfig{}), tc)

	msg, ok := m.Init()().(dashboardDataMsg)
	if !ok {
		t.Fatal("Init command did not produce dashboard data")
	}
	if msg.err != nil {
		t.Fatalf("load error = %v", msg.err)
	}
	if msg.data.CTLDays != 3 || msg.data.ATLDays != 45 {
		t.Errorf("trend computed with %d/%d, want 3/45", msg.data.CTLDays, msg.data.ATLDays)
	}
}

func TestTimeConstants_Adjust(t *testing.T) {
	tc := TimeConstants{CTLDays: config.MaxCTLDays, ATLDays: config.MinATLDays}

	if got := tc.AdjustCTL(1).CTLDays; got != config.MaxCTLDays {
		t.Errorf("AdjustCTL(+1) at max = %d, want %d", got, config.MaxCTLDays)
	}
	if got := tc.AdjustCTL(-1).CTLDays; got != config.MaxCTLDays-1 {
		t.Errorf("AdjustCTL(-1) = %d, want %d", got, config.MaxCTLDays-1)
	}
	if got := tc.AdjustATL(-1).ATLDays; got != config.MinATLDays {
		t.Errorf("AdjustATL(-1) at min = %d, want %d", got, config.MinATLDays)
	}
	if got := tc.AdjustATL(5).ATLDays; got != config.MinATLDays+5 {
		t.Errorf("AdjustATL(+5) = %d, want %d", got, config.MinATLDays+5)
	}

	// Adjust returns a copy
	if tc.CTLDays != config.MaxCTLDays {
		t.Error("AdjustCTL modified the receiver")
	}
}

func TestDashboard_KeysAdjustConstants(t *testing.T) {
	qs := service.NewQueryService(t.TempDir(), analysis.DefaultPaceOptions(), 1)
	m := NewDashboardModel(qs, NewUnits(config.DisplayConfig{}), TimeConstants{CTLDays: 42, ATLDays: 7})

	keys := []struct {
		key     string
		wantCTL int
		wantATL int
	}{
		{"]", 43, 7},
		{"[", 42, 7},
		{"=", 42, 8},
		{"-", 42, 7},
	}

	for _, k := range keys {
		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k.key)})
		m = model.(DashboardModel)
		if cmd == nil {
			t.Errorf("key %q returned no command", k.key)
		}
		if got := m.Constants(); got.CTLDays != k.wantCTL || got.ATLDays != k.wantATL {
			t.Errorf("after %q constants = %+v, want %d/%d", k.key, got, k.wantCTL, k.wantATL)
		}
	}
}

func TestDashboard_DropsStaleResults(t *testing.T) {
	qs := service.NewQueryService(t.TempDir(), analysis.DefaultPaceOptions(), 1)
	m := NewDashboardModel(qs, NewUnits(config.DisplayConfig{}), TimeConstants{CTLDays: 42, ATLDays: 7})

	stale := dashboardDataMsg{constants: TimeConstants{CTLDays: 41, ATLDays: 7}, data: &service.DashboardData{}}
	model, _ := m.Update(stale)
	if model.(DashboardModel).data != nil {
		t.Error("result for old constants should be ignored")
	}

	// Running the load command produces a result for the current constants
	msg := m.Init()()
	model, _ = m.Update(msg)
	got := model.(DashboardModel)
	if got.loading {
		t.Error("loading should be false after data arrives")
	}
	if got.data == nil || got.data.HasData() {
		t.Errorf("data = %+v, want empty dashboard data", got.data)
	}
}
