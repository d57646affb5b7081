package format

import (
	"fmt"
	"strings"
)

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 = 2
)

var (
	mdV1Replacer = newEscaper("_*`[")
	mdV2Replacer = newEscaper("_*[]()~`>#+-=|{}.!")
)

func newEscaper(specials string) *strings.Replacer {
	pairs := make([]string, 0, len(specials)*2)
	for _, r := range specials {
		pairs = append(pairs, string(r), `\`+string(r))
	}
	return strings.NewReplacer(pairs...)
}

// EscapeMarkdown escapes characters Telegram treats as formatting in the
// given markdown version, so user supplied text renders literally.
func EscapeMarkdown(text string, version int) (string, error) {
	switch version {
	case MarkdownV1:
		return mdV1Replacer.Replace(text), nil
	case MarkdownV2:
		return mdV2Replacer.Replace(text), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}
