package tasks

import "github.com/alexanderramin/focussim/internal/domain"

var defaultTemplates = map[domain.Environment][]domain.Task{
	domain.EnvDesk: {
		{Text: "Hausarbeit weiterschreiben", Kind: domain.KindDeepwork},
		{Text: "Mails beantworten", Kind: domain.KindEmail},
		{Text: "Abgabe planen", Kind: domain.KindPlanning},
	},
	domain.EnvHoersaal: {
		{Text: "Mitschreiben: Kernaussagen", Kind: domain.KindStudy},
		{Text: "Folie verstehen", Kind: domain.KindStudy},
		{Text: "Frage formulieren", Kind: domain.KindPlanning},
	},
	domain.EnvSupermarkt: {
		{Text: "Einkaufsliste abarbeiten", Kind: domain.KindErrand},
		{Text: "Nichts vergessen", Kind: domain.KindPlanning},
		{Text: "Kasse finden", Kind: domain.KindErrand},
	},
}

// Template returns a fresh copy of the starting tasks for env.
func Template(env domain.Environment) []domain.Task {
	tmpl, ok := defaultTemplates[env]
	if !ok {
		tmpl = defaultTemplates[domain.EnvDesk]
	}
	return append([]domain.Task(nil), tmpl...)
}

// PileUp lists the small tasks that appear when stress gets high.
var PileUp = []domain.Task{
	{Text: "Jetzt auch noch Mails checken", Kind: domain.KindEmail},
	{Text: "Termin bestätigen", Kind: domain.KindPlanning},
	{Text: "Nachricht beantworten", Kind: domain.KindSocial},
	{Text: "Wichtiges nicht vergessen", Kind: domain.KindPlanning},
	{Text: "Schnell was googeln", Kind: domain.KindPlanning},
}
