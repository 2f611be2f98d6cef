package app

import "fragment-analyzer/internal/domain/entity"

// Classify отбрасывает мелкие области и выбирает эталон.
// Эталоном становится область строго максимальной площади (при равенстве первая),
// только если режим без эталона выключен и областей осталось больше одной.
func Classify(regions []entity.Region, cfg entity.Configuration) entity.ClassifiedSet {
	filtered := make([]entity.Region, 0, len(regions))
	for _, r := range regions {
		if r.Area < cfg.MinRegionArea {
			continue
		}
		filtered = append(filtered, r)
	}

	refIndex := -1
	if !cfg.NoReferenceMode && len(filtered) > 1 {
		refIndex = 0
		for i := 1; i < len(filtered); i++ {
			if filtered[i].Area > filtered[refIndex].Area {
				refIndex = i
			}
		}
	}

	set := entity.ClassifiedSet{Fragments: make([]entity.Region, 0, len(filtered))}
	for i := range filtered {
		if i == refIndex {
			ref := filtered[i]
			set.Reference = &ref
			continue
		}
		set.Fragments = append(set.Fragments, filtered[i])
	}
	return set
}
