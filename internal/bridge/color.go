package bridge

// readableColors are chat name colors that stay legible on a dark terminal.
var readableColors = []string{
	"#FF7F50", "#1E90FF", "#00FF7F", "#FFD700", "#FF69B4",
	"#9ACD32", "#FF4500", "#2E8B57", "#DAA520", "#D2691E",
	"#5F9EA0", "#B22222", "#8A2BE2", "#00CED1", "#F08080",
}

// RandomColor picks a readable hex color using intN, which returns a value in
// [0, n) like rand.IntN.
func RandomColor(intN func(n int) int) string {
	return readableColors[intN(len(readableColors))]
}

// ColorOrRandom returns color unless it is empty.
func ColorOrRandom(color string, intN func(n int) int) string {
	if color != "" {
		return color
	}
	return RandomColor(intN)
}
