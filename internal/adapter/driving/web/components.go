package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/prcelebration/internal/adapter/driving/web/viewmodel"
)

// htmlWriter writes markup and remembers the first write error. raw is for
// constant markup only; dynamic values go through text or html.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) html(s vm.SanitizedHTML) {
	hw.raw(string(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Layout wraps body in the document shell. refreshSeconds > 0 reloads the
// page periodically.
func Layout(title, bodyClass string, refreshSeconds int, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		if refreshSeconds > 0 {
			hw.raw(`<meta http-equiv="refresh" content="` + strconv.Itoa(refreshSeconds) + `">`)
		}
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(`</title><link rel="icon" href="/static/favicon.svg" type="image/svg+xml">`)
		hw.raw(`<link rel="stylesheet" href="/static/celebration.css"></head><body class="`)
		hw.text(bodyClass)
		hw.raw(`">`)
		hw.component(ctx, body)
		hw.raw(`</body></html>`)
		return hw.err
	})
}

// Panel renders the celebration panel page.
func Panel(p vm.PanelViewModel) templ.Component {
	bodyClass := ""
	if p.Latest != nil {
		bodyClass = p.Latest.MoodClass()
	}
	return Layout(p.PageTitle, bodyClass, p.RefreshSeconds, panelBody(p))
}

func panelBody(p vm.PanelViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		if p.Latest == nil {
			hw.raw(`<p class="idle">Nothing to celebrate yet. Waiting for pull request notifications...</p>`)
		} else {
			hw.component(ctx, StickFigure(p.Latest.FigureClass()))
			hw.raw(`<div class="headline">`)
			hw.text(p.Latest.Headline)
			hw.raw(`</div>`)
			hw.component(ctx, prInfo(*p.Latest, p.CSRFToken))
		}
		hw.component(ctx, history(p.History))
		return hw.err
	})
}

// StickFigure renders the animated figure; class is "dancing" or "sad".
func StickFigure(class string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="stick-figure `)
		hw.text(class)
		hw.raw(`">`)
		hw.raw(`<div class="head"><div class="face"><div class="eyes"><div class="eye"></div><div class="eye"></div></div><div class="mouth"></div></div></div>`)
		hw.raw(`<div class="torso"></div>`)
		hw.raw(`<div class="limb arm left"></div><div class="limb arm right"></div>`)
		hw.raw(`<div class="limb leg left"></div><div class="limb leg right"></div>`)
		hw.raw(`</div>`)
		return hw.err
	})
}

func prInfo(c vm.CelebrationViewModel, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="pr-info"><div class="pr-title">`)
		hw.html(c.TitleHTML)
		hw.raw(`</div>`)
		if c.NumberLabel != "" {
			hw.raw(`<div class="pr-number">`)
			hw.text(c.NumberLabel)
			hw.raw(`</div>`)
		}
		if c.URL != "" {
			hw.raw(`<form method="post" action="/app/events">`)
			hw.raw(`<input type="hidden" name="` + csrfFormField + `" value="`)
			hw.text(csrfToken)
			hw.raw(`"><input type="hidden" name="command" value="openExternalLink">`)
			hw.raw(`<input type="hidden" name="url" value="`)
			hw.text(c.URL)
			hw.raw(`"><button type="submit" class="pr-link">View on GitHub</button></form>`)
		}
		hw.raw(`</div>`)
		return hw.err
	})
}

func history(items []vm.HistoryItemViewModel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(items) == 0 {
			return nil
		}
		hw := &htmlWriter{w: w}
		hw.raw(`<ul class="history">`)
		for _, item := range items {
			mood := "&#x1F615;"
			if item.Positive {
				mood = "&#x1F389;"
			}
			hw.raw(`<li><span class="mood">` + mood + `</span><span class="title">`)
			hw.html(item.TitleHTML)
			hw.raw(`</span>`)
			if item.NumberLabel != "" {
				hw.raw(`<span class="number">`)
				hw.text(item.NumberLabel)
				hw.raw(`</span>`)
			}
			hw.raw(`<span class="ago">`)
			hw.text(item.Ago)
			hw.raw(`</span></li>`)
		}
		hw.raw(`</ul>`)
		return hw.err
	})
}
