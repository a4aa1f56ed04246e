package bot

import (
	"fmt"

	"dota-tracker/internal/wire"
)

// Button is an inline button carrying callback data.
type Button struct {
	Text string
	Data string
}

// Markup is a transport-neutral keyboard. At most one of its fields is set.
type Markup struct {
	Reply  [][]string
	Inline [][]Button
	Remove bool
}

type Message struct {
	Text   string
	Markup *Markup
}

func mainMenu() *Markup {
	return &Markup{Reply: [][]string{
		{BtnMyMatches, BtnHeroes},
		{BtnHeroInfo, BtnMyStats},
		{BtnPlayerMatches, BtnRefresh},
		{BtnHelp},
	}}
}

func playerPrompt() *Markup {
	return &Markup{Reply: [][]string{
		{BtnRandomPlayer},
		{BtnCancel},
	}}
}

// heroPicker lists every hero as "id - name", three per row.
func heroPicker(heroes []wire.Hero) *Markup {
	rows := [][]string{{BtnRandomHero}}
	var row []string
	for _, h := range heroes {
		row = append(row, heroButton(h))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []string{BtnCancel})
	return &Markup{Reply: rows}
}

func heroButton(h wire.Hero) string {
	return fmt.Sprintf("%d - %s", h.ID, h.Name)
}

func heroDetailPrompt() *Markup {
	return &Markup{Reply: [][]string{
		{BtnHeroMyStats},
		{BtnHeroGeneral},
		{BtnBackToHeroes, BtnCancel},
	}}
}

// navKeyboard shows prev/next only when the page has a neighbour in that
// direction.
func navKeyboard(p *wire.Pagination, viewingSelf bool) *Markup {
	var nav []Button
	if p != nil && p.HasPrev {
		nav = append(nav, Button{Text: "⬅️ Prev", Data: CbPrev})
	}
	if p != nil && p.HasNext {
		nav = append(nav, Button{Text: "Next ➡️", Data: CbNext})
	}

	refresh := Button{Text: "🔄 New matches", Data: CbNew}
	if viewingSelf {
		refresh = Button{Text: "🔄 Refresh", Data: CbRefresh}
	}

	rows := [][]Button{}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows,
		[]Button{refresh},
		[]Button{{Text: "🏠 Main menu", Data: CbBack}},
	)
	return &Markup{Inline: rows}
}
