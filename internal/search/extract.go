package search

import "strings"

// Block is one heading-delimited chunk of a Markdown document.
type Block struct {
	Level   int    // Number of leading '#' characters (1-6).
	Heading string // Heading text without markers.
	Content string // Source text up to the next heading line.
}

// ExtractBlocks scans Markdown source line by line and returns one Block per
// ATX heading. Extraction is flat: a heading line of any rank closes the
// current block, so a level-2 block never contains its level-3 children.
// Text before the first heading is not part of any block. Lines inside fenced
// code are never treated as headings.
func ExtractBlocks(markdown string) []Block {
	var (
		blocks  []Block
		cur     *Block
		body    strings.Builder
		started bool
		fence   string
	)

	flush := func() {
		if cur != nil {
			cur.Content = body.String()
			blocks = append(blocks, *cur)
		}
		body.Reset()
	}

	for rest := markdown; rest != ""; {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			rest = ""
		}
		text := strings.TrimRight(line, "\r\n")

		if fence == "" {
			if level, heading, ok := parseHeading(text); ok {
				flush()
				cur = &Block{Level: level, Heading: heading}
				started = false
				continue
			}
		}
		fence = nextFence(fence, text)

		if cur == nil {
			continue
		}
		// Blank lines between the heading and its body are dropped.
		if !started && strings.TrimSpace(text) == "" {
			continue
		}
		started = true
		body.WriteString(line)
	}
	flush()

	return blocks
}

// parseHeading recognizes "#{1,6}<space>text". A closing run of '#' is
// stripped the way CommonMark does.
func parseHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	heading := strings.TrimSpace(line[level:])
	if trimmed := strings.TrimRight(heading, "#"); trimmed != heading {
		if trimmed == "" {
			heading = ""
		} else if strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			heading = strings.TrimSpace(trimmed)
		}
	}
	if heading == "" {
		return 0, "", false
	}
	return level, heading, true
}

// nextFence returns the fence that is open after line, given the fence that
// was open before it ("" when outside code).
func nextFence(open, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return open
	}
	run := fenceRun(trimmed)
	if open == "" {
		return run
	}
	if run != "" && run[0] == open[0] && len(run) >= len(open) && strings.TrimSpace(trimmed[len(run):]) == "" {
		return ""
	}
	return open
}

func fenceRun(s string) string {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return ""
	}
	n := 0
	for n < len(s) && s[n] == s[0] {
		n++
	}
	if n < 3 {
		return ""
	}
	return s[:n]
}
