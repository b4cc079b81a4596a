package rollup

// palette is cycled by label position so a currency or bank keeps its color for as long
// as its first-seen position is stable.
var palette = []string{
	"#2563eb",
	"#16a34a",
	"#f59e0b",
	"#dc2626",
	"#7c3aed",
	"#0891b2",
	"#db2777",
	"#65a30d",
	"#ea580c",
	"#4f46e5",
	"#0d9488",
	"#a16207",
}

func colorsFor(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
