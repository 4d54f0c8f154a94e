// Package topics holds the static bilingual debate topic catalog.
package topics

import "github.com/podiumlabs/arena/types"

// Catalog is the built-in set of suggested debate topics.
var Catalog = []types.DebateTopic{
	{
		ID:            "1",
		Title:         "AI: Salvation or Doom?",
		TitleZH:       "AI: 救世主还是毁灭者？",
		Description:   "Will Artificial Intelligence solve humanity's greatest challenges or lead to our inevitable extinction?",
		DescriptionZH: "人工智能会解决人类最大的挑战，还是会导致我们不可避免的灭绝？",
		Category:      "Technology",
		CategoryZH:    "科技",
	},
	{
		ID:            "2",
		Title:         "Universal Basic Income",
		TitleZH:       "全民基本收入 (UBI)",
		Description:   "Is UBI a necessary safety net for the automation age, or a path to societal laziness and economic collapse?",
		DescriptionZH: "UBI 是自动化时代的必要安全网，还是通往社会懒惰和经济崩溃的道路？",
		Category:      "Economics",
		CategoryZH:    "经济",
	},
	{
		ID:            "3",
		Title:         "Privacy vs. Security",
		TitleZH:       "隐私 vs 安全",
		Description:   "In a world of increasing threats, should we sacrifice personal privacy for the sake of collective security?",
		DescriptionZH: "在威胁日益增加的世界里，我们是否应该为了集体安全而牺牲个人隐私？",
		Category:      "Society",
		CategoryZH:    "社会",
	},
	{
		ID:            "4",
		Title:         "Mars Colonization",
		TitleZH:       "火星殖民",
		Description:   "Is colonizing Mars a vital backup plan for humanity or a waste of resources better spent fixing Earth?",
		DescriptionZH: "殖民火星是人类至关重要的B计划，还是浪费本应用于修复地球的资源？",
		Category:      "Space",
		CategoryZH:    "太空",
	},
	{
		ID:            "5",
		Title:         "Social Media Impact",
		TitleZH:       "社交媒体的影响",
		Description:   "Has social media brought the world closer together or driven us further apart into polarized echo chambers?",
		DescriptionZH: "社交媒体是拉近了世界的距离，还是将我们推入了两极分化的回音室？",
		Category:      "Culture",
		CategoryZH:    "文化",
	},
	{
		ID:            "6",
		Title:         "Remote Work",
		TitleZH:       "远程办公",
		Description:   "Is the shift to remote work a liberation of the workforce or the death of company culture and collaboration?",
		DescriptionZH: "向远程工作的转变是劳动力的解放，还是公司文化和协作的终结？",
		Category:      "Work",
		CategoryZH:    "职场",
	},
	{
		ID:            "7",
		Title:         "Genetic Engineering",
		TitleZH:       "基因工程",
		Description:   "Should we edit human genes to eliminate disease and enhance ability, or is that a line science must not cross?",
		DescriptionZH: "我们应该编辑人类基因以消除疾病和增强能力，还是那是科学不可逾越的界限？",
		Category:      "Science",
		CategoryZH:    "科学",
	},
	{
		ID:            "8",
		Title:         "Cash vs. Cashless",
		TitleZH:       "现金 vs 无现金",
		Description:   "Is a fully cashless society a leap in convenience and safety, or a surrender of freedom and resilience?",
		DescriptionZH: "完全无现金的社会是便利与安全的飞跃，还是自由与韧性的让渡？",
		Category:      "Economics",
		CategoryZH:    "经济",
	},
}

// Find returns the catalog entry with the given id, or false when absent.
func Find(id string) (types.DebateTopic, bool) {
	for _, t := range Catalog {
		if t.ID == id {
			return t, true
		}
	}
	return types.DebateTopic{}, false
}
