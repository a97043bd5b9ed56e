package cloud

import "testing"

func TestDemoLeadersSortedByXP(t *testing.T) {
	leaders := DemoLeaders()
	if len(leaders) == 0 {
		t.Fatal("demo leaderboard empty")
	}
	for i := 1; i < len(leaders); i++ {
		if leaders[i].XP > leaders[i-1].XP {
			t.Errorf("demo leaders out of order at %d: %d > %d", i, leaders[i].XP, leaders[i-1].XP)
		}
	}
	for _, l := range leaders {
		if l.DisplayName == "" || l.Avatar == "" {
			t.Errorf("demo leader missing fields: %+v", l)
		}
		if l.IsSelf {
			t.Errorf("demo leader %s marked as self", l.UserID)
		}
	}
}
