package achievement

import (
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

// Evaluate runs the catalog predicates against the latest snapshot and
// recent event window, returning only achievements not already present in
// stats.Achievements that now evaluate true. Results are in catalog
// declaration order. The function is deterministic and side-effect-free;
// appending the ids to the snapshot and persisting is the caller's job.
func Evaluate(stats domain.UserStats, events []domain.Event) []domain.Achievement {
	var earned []domain.Achievement
	for _, def := range Catalog {
		if stats.HasAchievement(def.ID) {
			continue
		}
		if def.Predicate(stats, events) {
			earned = append(earned, def.Achievement)
		}
	}
	return earned
}

// ByID looks up a catalog entry. The second return is false for ids the
// catalog has never defined (e.g. data written by a newer build).
func ByID(id string) (domain.Achievement, bool) {
	for _, def := range Catalog {
		if def.ID == id {
			return def.Achievement, true
		}
	}
	return domain.Achievement{}, false
}

// ProgressFor reports the user-facing progress view for every catalog
// entry, in catalog order.
func ProgressFor(stats domain.UserStats) []domain.AchievementProgress {
	out := make([]domain.AchievementProgress, 0, len(Catalog))
	for _, def := range Catalog {
		p := domain.AchievementProgress{
			Achievement: def.Achievement,
			Earned:      stats.HasAchievement(def.ID),
		}
		if def.Progress != nil {
			p.Current, p.Target = def.Progress(stats)
			if p.Earned {
				p.Current = p.Target
			}
		}
		out = append(out, p)
	}
	return out
}
