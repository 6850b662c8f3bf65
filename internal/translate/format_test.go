package translate

import (
	"strings"
	"testing"
)

func TestFormatTranslationNormalizesLineEndings(t *testing.T) {
	got := FormatTranslation("第一行\r\n第二行\r第三行")
	want := "第一行\n\n第二行\n\n第三行"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTranslationEscapedNewlines(t *testing.T) {
	got := FormatTranslation(`第一段\n第二段`)
	if got != "第一段\n\n第二段" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTranslationUnwrapsQuotes(t *testing.T) {
	if got := FormatTranslation(`"你好"`); got != "你好" {
		t.Errorf("got %q, want unwrapped", got)
	}
	// Mismatched pair stays.
	if got := FormatTranslation(`"你好'`); got != `"你好'` {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestFormatTranslationSpeakerSeparation(t *testing.T) {
	got := FormatTranslation("蝙蝠侠：住手！\n小丑：来抓我啊！")
	want := "蝙蝠侠：住手！\n\n小丑：来抓我啊！"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTranslationQuoteOnlyLines(t *testing.T) {
	// A line of bare quotes is decoration; no blank line around it.
	got := FormatTranslation("「\n你好\n」")
	if strings.Contains(got, "\n\n") {
		t.Errorf("got %q, want no blank lines around quote-only lines", got)
	}
}

func TestFormatTranslationExistingBlankLinesKept(t *testing.T) {
	got := FormatTranslation("段落一\n\n段落二")
	if got != "段落一\n\n段落二" {
		t.Errorf("got %q, blank line should not double up", got)
	}
}

func TestFormatTranslationSingleLine(t *testing.T) {
	if got := FormatTranslation("就一句话"); got != "就一句话" {
		t.Errorf("got %q", got)
	}
}

func TestSystemPromptIncludesContext(t *testing.T) {
	p := systemPrompt("Batman: Year One")
	if !strings.Contains(p, "Context about the comic: Batman: Year One") {
		t.Error("context not injected into prompt")
	}
	if !strings.Contains(p, "Simplified Chinese") {
		t.Error("prompt missing target language")
	}
}
