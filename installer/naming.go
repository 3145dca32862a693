package installer

import "unicode"

// DisplayName turns a program name into the name shown in the Start Menu by
// inserting a space wherever a lowercase letter is followed by an uppercase one.
//
//	"MyTool"     -> "My Tool"
//	"PDFViewer"  -> "PDFViewer"
//	"dataSync2"  -> "data Sync2"
func DisplayName(program string) string {
	out := make([]rune, 0, len(program)+4)
	lastLower := false
	for _, r := range program {
		if unicode.IsUpper(r) && lastLower {
			out = append(out, ' ')
		}
		out = append(out, r)
		lastLower = unicode.IsLower(r)
	}
	return string(out)
}
