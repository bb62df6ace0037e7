// Package brand resolves user-facing brand keywords (romanized names,
// Korean spellings, flagship product names) to the canonical maker token
// stored in the catalog. The table is static; Resolve is a pure function.
package brand

import "strings"

// aliases maps lowercase user input to the core keyword of the catalog's
// maker field. Values are partial on purpose: "日清" matches both
// "日清食品" and "日清食品株式会社".
var aliases = map[string]string{
	// Nissin
	"nissin":     "日清",
	"cup noodle": "日清",
	"ufo":        "日清",
	"donbei":     "日清",
	"どん兵衛":       "日清",
	"닛신":         "日清",
	"닛신식품":       "日清",

	// Toyo Suisan (better known overseas as Maruchan)
	"toyo suisan":  "東洋水産",
	"maruchan":     "東洋水産",
	"red fox":      "東洋水産",
	"green tanuki": "東洋水産",
	"마루짱":          "東洋水産",
	"토요수이산":        "東洋水産",
	"동양수산":         "東洋水産",

	// Sanyo Foods (Sapporo Ichiban)
	"sanyo foods":     "サンヨー食品",
	"sapporo ichiban": "サンヨー食品",
	"cup star":        "サンヨー食品",
	"삿포로이치반":         "サンヨー食品",
	"산요식품":           "サンヨー食品",

	// Myojo Foods (Ippei-chan, Charumera)
	"myojo":      "明星食品",
	"ippei":      "明星食品",
	"charumera":  "明星食品",
	"ippei-chan": "明星食品",
	"묘조":         "明星食品",
	"명성식품":       "明星食品",
	"잇페이짱":       "明星食品",

	// Acecook (Super Cup)
	"acecook":   "エースコック",
	"super cup": "エースコック",
	"에이스쿡":      "エースコック",
	"슈퍼컵":       "エースコック",

	// Maruka Foods (Peyoung)
	"maruka":       "まるか食品",
	"peyoung":      "まるか食品",
	"maruka foods": "まるか食品",
	"페양그":          "まるか食品",
	"마루카":          "まるか食品",

	// Yamadai (New Touch, Sugomen)
	"yamadai":   "ヤマダイ",
	"new touch": "ヤマダイ",
	"sugomen":   "ヤマダイ",
	"야마다이":      "ヤマダイ",
	"뉴터치":       "ヤマダイ",

	// Nongshim
	"nongshim":    "農心",
	"shin ramyun": "農心",
	"neoguri":     "農心",
	"농심":          "農心",
	"신라면":         "農心",
	"너구리":         "農心",

	// Samyang (Buldak)
	"samyang": "三養",
	"buldak":  "三養",
	"삼양":      "三養",
	"불닭":      "三養",
	"불닭볶음면":   "三養",

	// Ajinomoto
	"ajinomoto": "アジノモト",
	"yumyum":    "アジノモト",
	"아지노모토":     "アジノモト",

	// Ichiran
	"ichiran": "一蘭",
	"이치란":     "一蘭",

	// Marutai
	"marutai": "マルタイ",
	"마루타이":    "マルタイ",

	// Higashimaru
	"higashimaru": "ヒガシマル",
	"히가시마루":       "ヒガシマル",

	// Kokubu Group (Tabete)
	"kokubu": "国分",
	"tabete": "国分",
	"코쿠부":    "国分",
	"타베테":    "国分",

	// Tokushima Seifun (Kin-chan)
	"tokushima": "徳島製粉",
	"kin-chan":  "徳島製粉",
	"kinchan":   "徳島製粉",
	"도쿠시마":      "徳島製粉",
	"킨짱":        "徳島製粉",

	// Nagatanien
	"nagatanien": "永谷園",
	"나가타니엔":      "永谷園",

	// Masumoto (Miyazaki karamen)
	"masumoto": "桝元",
	"karamen":  "桝元",
	"마스모토":     "桝元",
}

// Resolve maps a brand query to the canonical maker token. Unknown queries
// are returned unchanged so callers can still try them as literal maker
// text. An empty query resolves to the empty string.
func Resolve(query string) string {
	if query == "" {
		return ""
	}
	if canonical, ok := aliases[strings.ToLower(query)]; ok {
		return canonical
	}
	return query
}
