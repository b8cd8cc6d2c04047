package records

import "snowland_hotels/internal/domain"

var seed = domain.Collection{
	{
		ID:          "1",
		Name:        "哈尔滨马迭尔宾馆",
		Location:    "哈尔滨",
		Stars:       4,
		Rating:      4.8,
		Tags:        []string{"历史悠久", "中央大街", "俄式风情"},
		Description: "始建于1906年，位于繁华的中央大街，是哈尔滨地标性建筑，充满浓郁的法式文艺复兴风格。",
		ImageURL:    "http://49.233.75.102/img/aa11.jpg",
		BookingURL:  "#",
		PriceRange:  "¥600 - ¥1200",
	},
	{
		ID:          "2",
		Name:        "亚布力地中海俱乐部 (Club Med)",
		Location:    "亚布力",
		Stars:       5,
		Rating:      4.9,
		Tags:        []string{"滑雪胜地", "一价全包", "亲子游"},
		Description: "全球知名的滑雪度假村，提供顶级的滑雪课程和设施，适合全家出游。",
		ImageURL:    "https://picsum.photos/800/600?random=2",
		BookingURL:  "#",
		PriceRange:  "¥2500 - ¥5000",
	},
	{
		ID:          "3",
		Name:        "雪乡万嘉戴斯度假酒店",
		Location:    "雪乡",
		Stars:       5,
		Rating:      4.5,
		Tags:        []string{"雪景房", "设施现代", "暖气足"},
		Description: "雪乡景区内的高端酒店，既能体验东北雪景，又能享受现代化的舒适住宿。",
		ImageURL:    "https://picsum.photos/800/600?random=3",
		BookingURL:  "#",
		PriceRange:  "¥1500 - ¥2800",
	},
	{
		ID:          "4",
		Name:        "延吉白山大厦",
		Location:    "延吉",
		Stars:       4,
		Rating:      4.6,
		Tags:        []string{"市中心", "朝鲜族特色", "美食周边"},
		Description: "老牌星级酒店，服务周到，周边美食众多，是探索延吉美食的绝佳落脚点。",
		ImageURL:    "https://picsum.photos/800/600?random=4",
		BookingURL:  "#",
		PriceRange:  "¥400 - ¥800",
	},
	{
		ID:          "5",
		Name:        "长白山柏悦酒店",
		Location:    "长白山",
		Stars:       5,
		Rating:      4.9,
		Tags:        []string{"奢华", "滑雪直通", "温泉"},
		Description: "隐于桦林中的奢华府邸，拥有专属滑雪屋和天然室外矿物质温泉泡池。",
		ImageURL:    "https://picsum.photos/800/600?random=5",
		BookingURL:  "#",
		PriceRange:  "¥3000 - ¥6000",
	},
}

// Seed returns a fresh copy of the collection written on first load.
func Seed() domain.Collection { return seed.Clone() }
