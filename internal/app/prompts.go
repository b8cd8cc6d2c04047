package app

import (
	"fmt"
	"strings"

	"snowland_hotels/internal/domain"
)

const (
	msgNoCredential = "请配置 API KEY 以使用 AI 助手功能。"
	msgTipsEmpty    = "AI 暂时无法回应，请稍后再试。"
	msgTipsFailed   = "获取 AI 建议时出现错误，请检查网络或 API Key。"
	msgSummaryEmpty = "暂无推荐语。"
	msgSummaryFail  = "获取推荐语失败。"
)

func tipsPrompt(loc domain.Location) string {
	return fmt.Sprintf(`作为一个资深的东北旅游专家，请为游客介绍一下【%s】的冬季旅游特色。
请包含以下内容：
1. 必去的一个核心景点。
2. 当地的特色美食推荐（2-3种）。
3. 冬季穿衣建议。
请保持回答在200字以内，语气热情幽默。`, loc)
}

func summaryPrompt(h domain.Hotel) string {
	return fmt.Sprintf(`请根据这家酒店的信息生成一段简短的推荐语（100字以内）：
名称：%s
位置：%s
星级：%d星
特点：%s
描述：%s

重点突出它的适合人群和最大卖点。`, h.Name, h.Location, h.Stars, strings.Join(h.Tags, ", "), h.Description)
}
