package markdown_test

import (
	"strings"
	"testing"

	"jornada/internal/platform/markdown"
)

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"date_key": "01-05"}, "# Gênesis 1-4\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["date_key"] != "01-05" {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if !strings.Contains(body, "# Gênesis 1-4") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitWithoutFrontmatterAndMissingSeparator(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain")
	if err != nil || len(meta) != 0 || body != "plain" {
		t.Fatalf("expected passthrough, got %v %q %v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nkey: 1\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestBlockReplaceKeepsUserText(t *testing.T) {
	t.Parallel()
	block := markdown.NewBlock("jornada")
	first := block.Replace("# Diário\n", "- one")
	if !strings.HasPrefix(first, "# Diário\n\n<!-- jornada:start -->\n- one\n<!-- jornada:end -->") {
		t.Fatalf("unexpected append: %q", first)
	}
	second := block.Replace(first+"\nnotes\n", "- two")
	if strings.Contains(second, "- one") || !strings.Contains(second, "- two") || !strings.HasSuffix(second, "notes\n") {
		t.Fatalf("unexpected replace: %q", second)
	}
	if got := block.Replace("", "x"); got != block.Start+"\nx\n"+block.End+"\n" {
		t.Fatalf("unexpected empty-body block: %q", got)
	}
}
