package markdown

import "strings"

// Block is a region of a note delimited by marker comments that the tool
// owns; text outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- " + name + ":start -->",
		End:   "<!-- " + name + ":end -->",
	}
}

// Replace swaps the block contents in body for generated, appending the
// block when body has none yet.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + generated + "\n" + b.End

	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(b.End):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
