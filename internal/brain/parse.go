package brain

import (
	"fmt"
	"strings"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
)

const (
	commentLabel = "comment:"
	promoLabel   = "promo:"
)

// parseEngagement extracts the two labeled lines the prompt asks for. It
// is deliberately lenient about what surrounds the labels — leading
// bullets, markdown emphasis, mixed case — because model output drifts.
// A missing or empty label is an error; the caller falls back.
func parseEngagement(raw string) (domain.Response, error) {
	var resp domain.Response
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-* ")
		line = strings.ReplaceAll(line, "**", "")

		lower := strings.ToLower(line)
		switch {
		case resp.Comment == "" && strings.HasPrefix(lower, commentLabel):
			resp.Comment = strings.TrimSpace(line[len(commentLabel):])
		case resp.Promo == "" && strings.HasPrefix(lower, promoLabel):
			resp.Promo = strings.TrimSpace(line[len(promoLabel):])
		}
	}

	if resp.Comment == "" {
		return domain.Response{}, fmt.Errorf("no Comment line in model output")
	}
	if resp.Promo == "" {
		return domain.Response{}, fmt.Errorf("no Promo line in model output")
	}
	return resp, nil
}
