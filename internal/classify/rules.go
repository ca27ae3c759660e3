package classify

import (
	"regexp"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

// DefaultRules returns the built-in rule tables. Merchant rules are exact
// chain names; heuristics catch store-name patterns the merchant table
// misses; keyword rules run against the item name as a last deterministic
// stage before the oracle.
func DefaultRules() Rules {
	return Rules{
		Merchants: []MerchantRule{
			{Name: "セブン-イレブン", Category: receipt.CategoryFood},
			{Name: "ファミリーマート", Category: receipt.CategoryFood},
			{Name: "ローソン", Category: receipt.CategoryFood},
			{Name: "スーパー玉出", Category: receipt.CategoryFood},
			{Name: "阪急電鉄", Category: receipt.CategoryTransport},
			{Name: "JR", Category: receipt.CategoryTransport},
			{Name: "スギ薬局", Category: receipt.CategoryDaily},
			{Name: "ココカラファイン", Category: receipt.CategoryDaily},
			{Name: "カインズ", Category: receipt.CategoryDaily},
			{Name: "スターバックス", Category: receipt.CategoryFood},
			{Name: "ドトール", Category: receipt.CategoryFood},
			{Name: "コーナン", Category: receipt.CategoryPet},
			{Name: "ペット", Category: receipt.CategoryPet},
		},
		Heuristics: []HeuristicRule{
			{
				Pattern:    regexp.MustCompile(`ドラッグ|薬局|ココカラ|マツキヨ|スギ薬局|ウェルシア`),
				Category:   receipt.CategoryDaily,
				Confidence: 0.85,
			},
			{
				Pattern:    regexp.MustCompile(`スーパー|マート|マーケット|百貨店|食品館|生鮮|フレッシュ`),
				Category:   receipt.CategoryFood,
				Confidence: 0.85,
			},
			{
				Pattern:    regexp.MustCompile(`電鉄|駅|JR|バス|地下鉄|メトロ|IC|切符`),
				Category:   receipt.CategoryTransport,
				Confidence: 0.9,
			},
			{
				Pattern:    regexp.MustCompile(`カフェ|コーヒー|ベーカリー|パン|スターバックス|ドトール`),
				Category:   receipt.CategoryFood,
				Confidence: 0.85,
			},
		},
		Keywords: []KeywordRule{
			{
				Keywords: []string{"切符", "乗車", "運賃", "ICチャージ", "改札"},
				Category: receipt.CategoryTransport,
			},
			{
				Keywords: []string{
					"シャンプー", "洗剤", "トイレットペーパー", "日用品", "ティッシュ",
					"キッチンペーパー", "スポンジ", "歯ブラシ", "歯磨き", "ボディソープ",
					"ゴミ袋", "洗濯", "柔軟剤", "マスク", "除菌",
				},
				Category: receipt.CategoryDaily,
			},
			{
				Keywords: []string{"病院", "クリニック", "薬", "処方"},
				Category: receipt.CategoryMedical,
			},
			{
				Keywords: []string{"犬", "ドッグ", "ペット", "フード", "トリミング", "おやつ"},
				Category: receipt.CategoryPet,
			},
			{
				Keywords: []string{
					"弁当", "おにぎり", "サンドイッチ", "パン", "牛乳", "卵", "肉", "野菜",
					"米", "寿司", "刺身", "惣菜", "ビール", "酒", "飲料", "お茶", "コーヒー",
					"紅茶", "カップ麺",
				},
				Category: receipt.CategoryFood,
			},
			{
				Keywords: []string{"Netflix", "Spotify", "Adobe", "サブスク", "定額"},
				Category: receipt.CategorySubscription,
			},
		},
	}
}
