package progress

import (
	"maps"
	"slices"
)

// Merge reconciles a local and a remote snapshot under a
// most-progress-wins policy. It is commutative and idempotent for the
// numeric and union fields:
//
//   - xp, gems, streak: maximum of the two
//   - lastStudyDate: chronologically later (absent = earliest)
//   - completedUnits: sorted set union
//   - mistakes: NOT merged — when the remote document carries a
//     mistakes map it replaces the result wholesale, so deletions made
//     on another device propagate. Mistakes recorded locally but not
//     yet synced are lost at merge time; this is deliberate, do not
//     "fix" it.
func Merge(local, remote Snapshot) Snapshot {
	out := Snapshot{
		XP:            max(local.XP, remote.XP),
		Gems:          max(local.Gems, remote.Gems),
		Streak:        max(local.Streak, remote.Streak),
		LastStudyDate: laterDate(local.LastStudyDate, remote.LastStudyDate),
	}

	union := make(map[string]bool, len(local.CompletedUnits)+len(remote.CompletedUnits))
	for _, id := range local.CompletedUnits {
		union[id] = true
	}
	for _, id := range remote.CompletedUnits {
		union[id] = true
	}
	if len(union) > 0 {
		out.CompletedUnits = slices.Sorted(maps.Keys(union))
	}

	if remote.Mistakes != nil {
		out.Mistakes = maps.Clone(remote.Mistakes)
	} else if local.Mistakes != nil {
		out.Mistakes = maps.Clone(local.Mistakes)
	}

	return out
}

// Exceeds reports whether the merged snapshot holds strictly more
// progress than the remote copy: higher xp, more completed units, or a
// higher streak. When true the merge result must be pushed back so the
// two copies converge.
func Exceeds(merged, remote Snapshot) bool {
	return merged.XP > remote.XP ||
		merged.Streak > remote.Streak ||
		len(merged.CompletedUnits) > len(remote.CompletedUnits)
}
