package debate

import (
	"fmt"

	"github.com/podiumlabs/arena/types"
)

// System and notification strings, localized per session language.

func analyzingTopicText(lang types.Language, topic string) string {
	if lang == types.LangZH {
		return fmt.Sprintf("正在分析话题: %q...", topic)
	}
	return fmt.Sprintf("Analysing topic: %q...", topic)
}

func matchFoundText(lang types.Language, a, b types.Persona) string {
	if lang == types.LangZH {
		return fmt.Sprintf("匹配成功: %s vs %s", a.Name, b.Name)
	}
	return fmt.Sprintf("Match Found: %s (%s) vs %s (%s)", a.Name, a.Role, b.Name, b.Role)
}

func initFailedText(lang types.Language) string {
	if lang == types.LangZH {
		return "辩论初始化失败。"
	}
	return "Failed to initialize debate."
}

func wildcardText(lang types.Language, modifier string) string {
	if lang == types.LangZH {
		return fmt.Sprintf("触发百变卡！下一位发言者必须: %q", modifier)
	}
	return fmt.Sprintf("Wildcard! The next speaker must: %q", modifier)
}

func judgingText(lang types.Language) string {
	if lang == types.LangZH {
		return "评委正在评分..."
	}
	return "The judge is deliberating..."
}

func savedText(lang types.Language) string {
	if lang == types.LangZH {
		return "保存成功"
	}
	return "Progress saved"
}

func loadedText(lang types.Language) string {
	if lang == types.LangZH {
		return "读取成功"
	}
	return "Session restored"
}

func saveFailedText(lang types.Language) string {
	if lang == types.LangZH {
		return "保存失败"
	}
	return "Failed to save progress"
}

func noSaveText(lang types.Language) string {
	if lang == types.LangZH {
		return "没有找到存档"
	}
	return "No saved session found"
}

func loadFailedText(lang types.Language) string {
	if lang == types.LangZH {
		return "读取存档失败"
	}
	return "Failed to load saved session"
}
