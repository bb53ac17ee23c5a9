package cubecap

import "fmt"

// FrameName returns the file name for a frame: prefix, the index padded to
// four digits, a dot and ext. Indices above 9999 keep all their digits.
//
//	FrameName("frame", 1, "tga") // "frame0001.tga"
func FrameName(prefix string, index int, ext string) string {
	return fmt.Sprintf("%s%04d.%s", prefix, index, ext)
}
