package progress

import (
	"reflect"
	"testing"
)

func TestMergeTakesMostProgress(t *testing.T) {
	local := Snapshot{
		XP: 150, Gems: 15, Streak: 2,
		LastStudyDate:  "2026-08-30",
		CompletedUnits: []string{"unit-1"},
		Mistakes:       map[string]int{"abril": 3, "adiós": 1},
	}
	remote := Snapshot{
		XP: 100, Gems: 20, Streak: 1,
		LastStudyDate:  "2026-08-31",
		CompletedUnits: []string{"unit-2"},
		Mistakes:       map[string]int{"abril": 3},
	}

	got := Merge(local, remote)

	want := Snapshot{
		XP: 150, Gems: 20, Streak: 2,
		LastStudyDate:  "2026-08-31",
		CompletedUnits: []string{"unit-1", "unit-2"},
		Mistakes:       map[string]int{"abril": 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestMergeRemoteMistakesReplaceWholesale(t *testing.T) {
	local := Snapshot{Mistakes: map[string]int{"casa": 2, "perro": 1}}
	remote := Snapshot{Mistakes: map[string]int{}}

	got := Merge(local, remote)
	if got.Mistakes == nil || len(got.Mistakes) != 0 {
		t.Errorf("cleared remote mistakes should win, got %v", got.Mistakes)
	}
}

func TestMergeKeepsLocalMistakesWhenRemoteAbsent(t *testing.T) {
	local := Snapshot{Mistakes: map[string]int{"casa": 2}}
	remote := Snapshot{}

	got := Merge(local, remote)
	if got.Mistakes["casa"] != 2 {
		t.Errorf("absent remote mistakes should keep local, got %v", got.Mistakes)
	}
}

func TestMergeCommutativeOutsideMistakes(t *testing.T) {
	a := Snapshot{XP: 40, Gems: 4, Streak: 3, LastStudyDate: "2026-08-01", CompletedUnits: []string{"unit-1", "unit-3"}}
	b := Snapshot{XP: 90, Gems: 2, Streak: 1, LastStudyDate: "2026-08-15", CompletedUnits: []string{"unit-2"}}

	ab := Merge(a, b)
	ba := Merge(b, a)
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("Merge(a,b) = %+v but Merge(b,a) = %+v", ab, ba)
	}
}

func TestMergeIdempotent(t *testing.T) {
	a := Snapshot{XP: 40, Streak: 3, CompletedUnits: []string{"unit-1"}}
	b := Snapshot{XP: 90, CompletedUnits: []string{"unit-2"}, Mistakes: map[string]int{"sol": 1}}

	once := Merge(a, b)
	twice := Merge(once, b)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-merging same remote changed result: %+v vs %+v", once, twice)
	}
}

func TestMergeEmptyDates(t *testing.T) {
	got := Merge(Snapshot{LastStudyDate: "2026-08-30"}, Snapshot{})
	if got.LastStudyDate != "2026-08-30" {
		t.Errorf("LastStudyDate = %q, want 2026-08-30", got.LastStudyDate)
	}
	if got := Merge(Snapshot{}, Snapshot{}); got.LastStudyDate != "" {
		t.Errorf("LastStudyDate = %q, want empty", got.LastStudyDate)
	}
}

func TestExceeds(t *testing.T) {
	tests := []struct {
		name   string
		merged Snapshot
		remote Snapshot
		want   bool
	}{
		{"equal", Snapshot{XP: 10}, Snapshot{XP: 10}, false},
		{"more xp", Snapshot{XP: 20}, Snapshot{XP: 10}, true},
		{"more units", Snapshot{CompletedUnits: []string{"unit-1"}}, Snapshot{}, true},
		{"higher streak", Snapshot{Streak: 2}, Snapshot{Streak: 1}, true},
		{"only gems differ", Snapshot{Gems: 50}, Snapshot{Gems: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exceeds(tt.merged, tt.remote); got != tt.want {
				t.Errorf("Exceeds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMistakeWordsOrder(t *testing.T) {
	s := Snapshot{Mistakes: map[string]int{"casa": 1, "abril": 3, "perro": 3, "sol": 2}}
	got := s.MistakeWords()
	want := []string{"abril", "perro", "sol", "casa"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MistakeWords = %v, want %v", got, want)
	}
}
