package domain

// Fixed form vocabularies. These mirror the spreadsheet's master data; the
// server is the authority, the client only constrains its own inputs.

// ExpenseCategories are the selectable cost categories.
var ExpenseCategories = []string{"材料費", "交通費", "外注費", "消耗品費", "飲食費", "その他"}

// PhotoCategory pairs the stored value with its display label.
type PhotoCategory struct {
	Value string
	Label string
}

// PhotoCategories are the construction-phase buckets for site photos.
var PhotoCategories = []PhotoCategory{
	{Value: "before", Label: "契約前"},
	{Value: "inspection", Label: "現調"},
	{Value: "pre_construction", Label: "施工前"},
	{Value: "undercoat", Label: "下地"},
	{Value: "during", Label: "施工中"},
	{Value: "after", Label: "施工後"},
	{Value: "completed", Label: "完工"},
	{Value: "other", Label: "その他"},
}

// ValidPhotoCategory reports whether v is a known photo category value.
func ValidPhotoCategory(v string) bool {
	for _, c := range PhotoCategories {
		if c.Value == v {
			return true
		}
	}
	return false
}

// SalesRoutes are the lead-acquisition channels for new projects.
var SalesRoutes = []string{"チラシ", "Web自然流入", "Web広告", "新聞", "紹介", "イベント", "OB施策", "LINE"}

// WorkTypes are the renovation job categories.
var WorkTypes = []string{"外壁塗装", "屋根塗装", "水回り（キッチン）", "水回り（浴室）", "水回り（トイレ）", "内装リフォーム", "外構工事", "その他"}

// MeetingTypes are the customer-contact channels for meeting records.
var MeetingTypes = []string{"訪問", "電話", "オンライン", "来店"}
