package contentfilter

// runeRange is an inclusive range of Unicode code points.
type runeRange struct {
	lo, hi rune
}

// emojiRanges covers the emoji blocks rejected by the filter: emoticons,
// pictographs, transport symbols, flags, supplemental emoji, combining
// enclosing marks, and the emoji presentation selector (VS16).
var emojiRanges = []runeRange{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators (flags)
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1F018, 0x1F270},
	{0x238C, 0x2454},
	{0x20D0, 0x20FF}, // combining marks for symbols
	{0xFE0F, 0xFE0F}, // variation selector-16
	{0x1F004, 0x1F004},
	{0x1F0CF, 0x1F0CF},
	{0x1F170, 0x1F251},
	{0x1F910, 0x1F96B},
	{0x1F980, 0x1F997},
	{0x1F9C0, 0x1F9E6},
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-A
	{0x2194, 0x2199},
	{0x21A9, 0x21AA},
	{0x231A, 0x231B},
	{0x2328, 0x2328},
	{0x23CF, 0x23CF},
	{0x23E9, 0x23F3},
	{0x23F8, 0x23FA},
	{0x24C2, 0x24C2},
	{0x25AA, 0x25AB},
	{0x25B6, 0x25B6},
	{0x25C0, 0x25C0},
	{0x25FB, 0x25FE},
	{0x2B05, 0x2B07},
	{0x2B1B, 0x2B1C},
	{0x2B50, 0x2B50},
	{0x2B55, 0x2B55},
	{0x3030, 0x3030},
	{0x303D, 0x303D},
	{0x3297, 0x3297},
	{0x3299, 0x3299},
}

// illegalRanges covers the C0 control characters minus the common whitespace
// controls (tab, LF, CR), plus DEL.
var illegalRanges = []runeRange{
	{0x0000, 0x0008},
	{0x000B, 0x000C},
	{0x000E, 0x001F},
	{0x007F, 0x007F},
}

func inRanges(r rune, ranges []runeRange) bool {
	for _, rr := range ranges {
		if r >= rr.lo && r <= rr.hi {
			return true
		}
	}
	return false
}

func isEmoji(r rune) bool {
	return inRanges(r, emojiRanges)
}

func isIllegal(r rune) bool {
	return inRanges(r, illegalRanges)
}
