package receipt

// Category is the closed set of spending categories. Values are the
// Japanese labels persisted in the records store; anything outside this
// set must be clamped to CategoryOther before persistence.
type Category string

const (
	CategoryFood         Category = "食費"
	CategoryTransport    Category = "交通"
	CategoryDaily        Category = "日用品（スーパー・ドラッグストア）"
	CategoryMedical      Category = "医療"
	CategoryPet          Category = "犬関係"
	CategoryHobby        Category = "趣味・娯楽"
	CategoryEducation    Category = "教育・学習"
	CategorySubscription Category = "サブスク（Netflix, Spotify など）"
	CategorySocial       Category = "交際費（飲み会・プレゼント）"
	CategoryOther        Category = "その他"
)

// Categories returns the allowed categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryDaily,
		CategoryMedical,
		CategoryPet,
		CategoryHobby,
		CategoryEducation,
		CategorySubscription,
		CategorySocial,
		CategoryOther,
	}
}

// Valid reports whether c is one of the allowed categories.
func (c Category) Valid() bool {
	for _, allowed := range Categories() {
		if c == allowed {
			return true
		}
	}

	return false
}

// Source records where a classification came from.
type Source string

const (
	// SourceRule marks a deterministic table match.
	SourceRule Source = "rule"
	// SourceAI marks an oracle fallback result.
	SourceAI Source = "ai"
	// SourceManual marks a human correction; the pipeline never emits it.
	SourceManual Source = "manual"
)

// ClassifiedItem is a line item with its assigned category.
type ClassifiedItem struct {
	ItemDraft

	Category   Category
	Confidence float64
	Source     Source
}
