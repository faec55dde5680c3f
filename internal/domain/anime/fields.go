package anime

// FieldOrder 是详情区字段的固定渲染顺序，与 JSON 中键的顺序无关。
var FieldOrder = []string{
	"首播日", "集数", "动画制作", "原作", "日本放送局", "广告代理", "海外授权", "日本流媒体授权", "日本流媒体", "碟片",
	"音乐制作", "音乐·OP", "音乐·ED", "音乐·OST", "日本商品授权", "宣传",
}

func DefaultLabels() map[string]string {
	labels := make(map[string]string, len(FieldOrder))
	for _, name := range FieldOrder {
		labels[name] = name
	}
	return labels
}

type DetailRow struct {
	Name  string
	Label string
	Value string
}

// DetailRows 按 FieldOrder 输出有值的字段，标签缺失时退回字段名本身。
func (r Record) DetailRows(labels map[string]string) []DetailRow {
	var rows []DetailRow
	for _, name := range FieldOrder {
		v, ok := r.Field(name)
		if !ok {
			continue
		}
		label := labels[name]
		if label == "" {
			label = name
		}
		rows = append(rows, DetailRow{Name: name, Label: label, Value: v})
	}
	return rows
}
