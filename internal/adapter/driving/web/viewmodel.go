package web

import (
	"fmt"
	"time"

	vm "github.com/ericfisherdev/prcelebration/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// panelRefreshSeconds is how often the panel reloads to pick up new presentations.
const panelRefreshSeconds = 15

// toPanelViewModel converts the latest celebration and the recent history
// into the panel view model. latest may be nil before anything was presented.
func toPanelViewModel(latest *model.Celebration, recent []model.Celebration, csrfToken string, now time.Time) vm.PanelViewModel {
	panel := vm.PanelViewModel{
		PageTitle:      "PR Status",
		CSRFToken:      csrfToken,
		RefreshSeconds: panelRefreshSeconds,
		History:        make([]vm.HistoryItemViewModel, 0, len(recent)),
	}

	if latest != nil {
		c := toCelebrationViewModel(*latest)
		panel.Latest = &c
		if c.Positive {
			panel.PageTitle = "PR Celebration!"
		}
	}

	for _, c := range recent {
		if latest != nil && c.ID == latest.ID {
			continue
		}
		panel.History = append(panel.History, vm.HistoryItemViewModel{
			Positive:    c.Outcome.IsPositive(),
			TitleHTML:   vm.SanitizedHTML(RenderTitle(c.Title)),
			NumberLabel: numberLabel(c.Number),
			Ago:         formatAgo(now.Sub(c.PresentedAt)),
		})
	}

	return panel
}

func toCelebrationViewModel(c model.Celebration) vm.CelebrationViewModel {
	return vm.CelebrationViewModel{
		Positive:    c.Outcome.IsPositive(),
		Headline:    c.Outcome.Headline(),
		TitleHTML:   vm.SanitizedHTML(RenderTitle(c.Title)),
		NumberLabel: numberLabel(c.Number),
		URL:         c.HTMLURL,
		PresentedAt: c.PresentedAt.Local().Format("15:04:05"),
	}
}

func numberLabel(number int) string {
	if number <= 0 {
		return ""
	}
	return fmt.Sprintf("PR #%d", number)
}

// formatAgo renders a coarse relative time such as "3m ago".
func formatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
