package stimulus

import (
	"strings"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// Visual bags per environment. Duplicates weight the draw.
var visualBags = map[domain.Environment][]domain.VisualKind{
	domain.EnvHoersaal: {
		domain.VisualFlashingLight, domain.VisualFlashingLight,
		domain.VisualPeripheralMovement, domain.VisualThoughtBubble,
	},
	domain.EnvDesk: {
		domain.VisualMonitorMicro, domain.VisualMonitorMicro, domain.VisualMonitorMicro,
		domain.VisualScreenFlicker, domain.VisualScreenFlicker,
		domain.VisualFlashingLight,
		domain.VisualLargePopup, domain.VisualPeripheralMovement,
		domain.VisualThoughtBubble, domain.VisualMovingObject,
	},
	domain.EnvSupermarkt: {
		domain.VisualMovingObject, domain.VisualMovingObject,
		domain.VisualPeripheralMovement, domain.VisualPeripheralMovement,
		domain.VisualThoughtBubble,
	},
}

// visualBag returns the weighted bag for env, adjusted for the task state
// on the desk: procrastination pulls toward screens, re-entry toward
// task-adjacent screen noise.
func visualBag(env domain.Environment, state domain.TaskState, reentry bool) []domain.VisualKind {
	base, ok := visualBags[env]
	if !ok {
		base = visualBags[domain.EnvDesk]
	}
	bag := append([]domain.VisualKind(nil), base...)
	if env != domain.EnvDesk {
		return bag
	}
	switch state {
	case domain.StateProcrastinating:
		bag = append(bag, domain.VisualMonitorMicro, domain.VisualMonitorMicro, domain.VisualLargePopup)
	case domain.StateWorking:
		bag = without(bag, domain.VisualMovingObject)
		if reentry {
			bag = without(bag, domain.VisualLargePopup)
			bag = append(bag, domain.VisualMonitorMicro, domain.VisualMonitorMicro, domain.VisualScreenFlicker)
		}
	}
	return bag
}

func without[T comparable](items []T, drop ...T) []T {
	out := items[:0:0]
	for _, it := range items {
		keep := true
		for _, d := range drop {
			if it == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

var thoughts = map[domain.Environment][]string{
	domain.EnvDesk: {
		"Was gibt’s zu essen?",
		"Hab ich was vergessen?",
		"Wie spät ist es?",
		"Nachrichten checken...",
		"Was läuft auf YouTube?",
		"Schon wieder eine Mail?",
		"Nur kurz ans Handy…",
		"Ich sollte eigentlich anfangen…",
		"Wo ist mein Notizzettel?",
		"Warum ist das so schwer gerade?",
		"Ich mach erst mal Kaffee…",
		"Habe ich den Tab schon offen gehabt?",
		"Kurz Musik anmachen?",
		"Welche Datei war das nochmal?",
		"Ich brauch eine Pause. Oder?",
		"Vielleicht erstmal aufräumen…",
	},
	domain.EnvHoersaal: {
		"Was hat der Prof gerade gesagt?",
		"Ich muss noch einkaufen...",
		"Wann ist Pause?",
		"Handy vibriert?",
		"Was macht die Lerngruppe?",
		"Hoffentlich fragt er mich nicht!",
		"Hab ich die Folie fotografiert?",
		"Ich hab den Faden verloren…",
		"Was war die Definition?",
		"Alle schauen so konzentriert…",
		"Ich sitz unbequem.",
		"Bitte keine Gruppenarbeit…",
		"Wie lange geht das noch?",
		"Warum bin ich so müde?",
		"Soll ich kurz rausgehen?",
	},
	domain.EnvSupermarkt: {
		"Was fehlt noch?",
		"Wo ist das Sonderangebot?",
		"Habe ich genug Geld dabei?",
		"Was wollte ich noch kaufen?",
		"Gibt’s Rabatt?",
		"Schon wieder WhatsApp...",
		"Milch… oder war’s Hafermilch?",
		"Welche Kasse ist die schnellste?",
		"Ich hab Hunger…",
		"Warum ist es hier so laut?",
		"Hab ich meinen Geldbeutel?",
		"Oh, das sieht lecker aus.",
		"Wo ist nochmal die Pasta?",
		"Ich brauch eine Liste…",
		"Nicht zu viel kaufen…",
	},
}

// maxThoughtBubbles is the number of bubble slots around the camera.
const maxThoughtBubbles = 5

var (
	thoughtLifeBase   = [4]int{0, 2300, 2800, 3300}
	thoughtLifeJitter = [4]int{0, 550, 650, 750}
)

type movingObject struct {
	Icon  string
	Color string
}

var movingObjects = []movingObject{
	{Icon: "!", Color: "#ef4444"},
	{Icon: "⚠️", Color: "#fbbf24"},
	{Icon: "💬", Color: "#3b82f6"},
}

const paperPlane = "✈"

var lightColors = []string{"#fbbf24", "#ef4444", "#3b82f6", "#a855f7", "#10b981", "#f97316"}

type lightSpec struct {
	period    time.Duration
	repeats   int
	intensity float64
}

var flashingLights = [4]lightSpec{
	{600 * time.Millisecond, 2, 2},
	{600 * time.Millisecond, 2, 2},
	{800 * time.Millisecond, 3, 4.5},
	{1000 * time.Millisecond, 4, 6},
}

var (
	deskGlare          = [4]float64{0, 0.08, 0.11, 0.14}
	deskExtraFlicker   = [4]float64{0, 0.30, 0.55, 0.72}
	peripheralCueProb  = [4]float64{0, 0.10, 0.18, 0.28}
	peripheralDeskCue  = [4]int{0, 700, 1000, 1300}
	peripheralLookCue  = [4]int{0, 900, 1300, 1700}
	microDeskCueProb   = [4]float64{0, 0.22, 0.40, 0.58}
	microLookProb      = [4]float64{0, 0.18, 0.28, 0.42}
	microLookDuration  = [4]int{0, 520, 850, 1200}
	microLifeBase      = [4]int{0, 1600, 2300, 3100}
	microLifeJitter    = [4]int{0, 900, 1100, 1300}
	microRefocusBase   = [4]int{0, 1200, 1350, 1500}
	microRefocusJitter = 500
)

// MicroVariant is the content of a monitor micro-distraction card.
type MicroVariant struct {
	Title  string
	Body   string
	Accent string
	Icon   string
}

var (
	microDiscord = MicroVariant{"Discord", "„Nur kurz“: 1 neue Nachricht", "#5865f2", "💬"}
	microYouTube = MicroVariant{"YouTube", "Shorts: „2 Min Tutorial“", "#ef4444", "▶"}
	microSystem  = MicroVariant{"System", "Achtung: Akku 20%", "#f59e0b", "⚠"}
	microSteam   = MicroVariant{"Steam", "Update verfügbar (jetzt?)", "#0ea5e9", "💾"}
	microBack    = MicroVariant{"Zurück zur Aufgabe", "Weiter im aktuellen Tab", "#22c55e", "↩"}
	microContext = MicroVariant{"Zurück", "Wo war ich…? Kontext wiederfinden", "#64748b", "↩"}

	microCommon = []MicroVariant{microDiscord, microYouTube, microSystem}
)

var microByKind = map[domain.TaskKind][]MicroVariant{
	domain.KindDeepwork: {
		{"GitHub", "PR: „Nur kurz reviewen…“", "#a78bfa", "🧩"},
		{"Docs", "„Ich schau nur schnell nach…“", "#0ea5e9", "🔎"},
		{"Build", "Fehler: 1 Warnung (fix?)", "#f97316", "🛠"},
	},
	domain.KindEmail: {
		{"Mail", "Neue Nachricht: „kurze Rückfrage“", "#38bdf8", "✉"},
		{"Kalender", "Meeting in 15 Min (prep?)", "#60a5fa", "📅"},
		{"Slack", "Ping: „Hast du kurz Zeit?“", "#22c55e", "💬"},
	},
	domain.KindPlanning: {
		{"Notizen", "„Noch schnell“ 3 neue Punkte", "#f59e0b", "🗒"},
		{"Shop", "„Nur kurz Preise vergleichen…“", "#fb7185", "🛒"},
	},
	domain.KindChores: {
		{"Playlist", "„Nur kurz Song wechseln…“", "#a855f7", "🎵"},
		{"Messenger", "„Bin gleich da…“", "#38bdf8", "💬"},
	},
	domain.KindSocial: {
		{"Messenger", "„Nur kurz antworten…“", "#38bdf8", "💬"},
		{"Anruf", "Verpasster Anruf", "#ef4444", "📞"},
	},
}

// microPool builds the card pool for the current situation. Refocus and
// re-entry lean on task-adjacent cards; procrastination and interruptions
// on entertainment. Level 1 outside procrastination never shows YouTube;
// level 3 adds extra tempting cards.
func microPool(kind domain.TaskKind, level domain.Level, reason domain.Reason, state domain.TaskState, reentryActive bool) []MicroVariant {
	procrastinating := state == domain.StateProcrastinating
	interrupt := reason == domain.ReasonInterrupt
	refocus := reason == domain.ReasonRefocus
	reentry := reason == domain.ReasonReentry || (state == domain.StateWorking && reentryActive)
	taskAdj := microByKind[kind]

	var pool []MicroVariant
	switch {
	case refocus:
		pool = concat(taskAdj, taskAdj, []MicroVariant{microSystem, microBack})
	case procrastinating || interrupt:
		pool = concat(microCommon, []MicroVariant{microSteam})
	case reentry:
		pool = concat(taskAdj, taskAdj, []MicroVariant{microSystem, microContext})
	default:
		pool = concat(taskAdj, microCommon)
	}
	if refocus {
		return pool
	}

	switch {
	case level == domain.LevelLow && !(procrastinating || interrupt):
		pool = concat(pool, taskAdj, taskAdj, []MicroVariant{microSystem, microSystem})
		pool = without(pool, microYouTube)
	case level == domain.LevelHigh && !reentry:
		pool = concat(pool, []MicroVariant{microDiscord, microYouTube, microDiscord, microYouTube, microSteam})
	}
	return pool
}

func concat[T any](parts ...[]T) []T {
	var out []T
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Monitors on the desk, left to right.
var monitors = []struct {
	ID  string
	Pos domain.Vec3
	Pan float64
}{
	{ID: "monitor1", Pos: domain.Vec3{X: -0.34, Y: 1.22, Z: -0.85}, Pan: -0.25},
	{ID: "monitor2", Pos: domain.Vec3{X: 0.34, Y: 1.22, Z: -0.85}, Pan: 0.25},
}

var monitorBase = []string{
	"Akku bei 20%",
	"WLAN instabil",
	"Update verfügbar",
	"Speicher fast voll",
	"Bluetooth an",
	"Kalender: in 1 Stunde",
	"Neue Geräte in der Nähe",
}

var monitorTaskish = map[domain.TaskKind][]string{
	domain.KindDeepwork: {
		"Build: 1 Warnung",
		"PR Kommentar: „kurz schauen?“",
		"Docs Tab: „nur schnell…“",
		"TODO: 3 offene Punkte",
		"Lint: 2 Fehler",
		"Branch: Konflikt erkannt",
	},
	domain.KindEmail: {
		"E-Mail erhalten",
		"Kalender-Erinnerung",
		"Slack: @du",
		"Outlook: 2 neue Mails",
		"Teams: Mention",
		"Anhang fehlt?",
	},
	domain.KindPlanning: {
		"Notizen: 3 neue Punkte",
		"Preisvergleich offen",
		"Liste: noch 5 Schritte",
		"Plan: „nur anfangen“",
	},
}

var monitorTaskishDefault = []string{"Erinnerung: „kurz erledigen“", "Tab: „nur kurz nachsehen“"}

var monitorTempting = []string{
	"YouTube Empfehlung",
	"Discord: neue Nachricht",
	"Steam: Update (jetzt?)",
	"Social: 2 neue Nachrichten",
	"TikTok: Für dich",
	"Instagram: neue Story",
	"Reddit: Trending Thread",
}

var monitorReentry = []string{
	"Zurück zum Tab: „Wo war ich?“",
	"Cursor blinkt… (Kontext?)",
	"Notiz: „Faden wieder aufnehmen“",
	"Scroll: „wo war die Stelle?“",
	"Suchfeld: „was wollte ich?“",
}

var monitorRefocus = []string{
	"Zurück zur Aufgabe",
	"Nächster Schritt: klein anfangen",
	"Mini-Plan: 2 Minuten dranbleiben",
	"Atmen. Ein Satz reicht.",
	"Nur Überschrift schreiben",
}

// monitorBag mirrors microPool for the one-line monitor notification.
// Outside procrastination and refocus the bag is topped up half taskish,
// half tempting.
func monitorBag(kind domain.TaskKind, reason domain.Reason, state domain.TaskState, reentryActive bool) []string {
	taskish, ok := monitorTaskish[kind]
	if !ok {
		taskish = monitorTaskishDefault
	}
	procrastinating := state == domain.StateProcrastinating || reason == domain.ReasonInterrupt
	reentry := reason == domain.ReasonReentry || (state == domain.StateWorking && reentryActive)

	switch {
	case reason == domain.ReasonRefocus:
		return concat(monitorBase, taskish, monitorRefocus)
	case procrastinating:
		return concat(monitorBase, monitorTempting)
	case reentry:
		return concat(monitorBase, taskish, monitorReentry, taskish, monitorTempting)
	default:
		return concat(monitorBase, taskish, taskish, monitorTempting)
	}
}

// PhoneNotification is one smartphone message.
type PhoneNotification struct {
	App    string
	Sender string
	Text   string
	Icon   string
	Time   string
}

func (n PhoneNotification) key() string {
	return n.App + "|" + n.Sender + "|" + n.Text
}

var phoneNotifications = map[domain.Environment][]PhoneNotification{
	domain.EnvDesk: {
		{"Discord", "Zockerkumpels", "Eine Runde zocken?", "🎮", "jetzt"},
		{"YouTube", "Empfehlung", "Neues Video von deinem Lieblingskanal", "▶️", "vor 2 Min"},
		{"Steam", "Update", "Download bereit: 47 GB", "💾", "jetzt"},
		{"Instagram", "Lisa", "hat dein Foto geliked", "❤️", "vor 1 Min"},
		{"TikTok", "Trending", "12 neue Videos für dich", "🎵", "jetzt"},
		{"Spotify", "Playlist", "Deine Wochenübersicht ist da", "🎧", "vor 5 Min"},
		{"Slack", "Team", "Kurzer Ping: hast du kurz Zeit?", "💬", "jetzt"},
		{"Kalender", "Erinnerung", "Meeting in 30 Minuten", "📅", "jetzt"},
		{"Mail", "Dozent", "Reminder: Abgabe heute 23:59", "📧", "vor 6 Min"},
		{"GitHub", "CI", "Build fehlgeschlagen: Tests rot", "🔧", "jetzt"},
		{"Lieferando", "Deal", "Heute 2 für 1 auf Pizza", "🍕", "vor 3 Min"},
		{"Wetter", "Warnung", "Regen in 20 Minuten", "🌧️", "jetzt"},
	},
	domain.EnvHoersaal: {
		{"Mail", "Prof. Schmidt", "Klausurtermin verschoben", "📧", "jetzt"},
		{"WhatsApp", "Lerngruppe", "Kommst du heute zum Lernen?", "💬", "jetzt"},
		{"Kalender", "Erinnerung", "Abgabe Hausarbeit in 2 Tagen", "📅", "jetzt"},
		{"Moodle", "Neue Aufgabe", "Übungsblatt 7 hochgeladen", "📚", "vor 10 Min"},
		{"WhatsApp", "Mama", "Kommst du am Wochenende?", "👋", "jetzt"},
		{"Instagram", "Studigruppe", "Story: Mensa closed today", "📸", "vor 3 Min"},
		{"CampusApp", "Uni", "Raumänderung: Hörsaal B statt A", "🏫", "jetzt"},
		{"Telegram", "Kurschat", "Hat jemand die Folien?", "📎", "jetzt"},
		{"Kalender", "Erinnerung", "Tutorium morgen 08:00", "⏰", "vor 2 Min"},
		{"Mail", "Sekretariat", "Anmeldung bestätigt", "✅", "vor 12 Min"},
		{"Anruf", "Unbekannt", "Eingehender Anruf...", "📱", "jetzt"},
	},
	domain.EnvSupermarkt: {
		{"Einkaufsliste", "Reminder", "Noch 3 Artikel übrig", "📝", "jetzt"},
		{"Payback", "Angebot", "20% auf Getränke heute!", "💰", "jetzt"},
		{"WhatsApp", "Partner", "Vergiss die Milch nicht!", "🥛", "vor 1 Min"},
		{"Banking", "Kontostand", "Abbuchung: -47,23€", "💳", "jetzt"},
		{"Lieferando", "Rabatt", "Pizza bestellen & sparen", "🍕", "vor 5 Min"},
		{"Anruf", "Unbekannt", "Eingehender Anruf...", "📱", "jetzt"},
		{"REWE", "App", "Coupon verfügbar: -10% auf Obst", "🍎", "jetzt"},
		{"Maps", "Erinnerung", "Parkzeit läuft bald ab", "🅿️", "jetzt"},
		{"PayPal", "Sicherheit", "Neue Anmeldung erkannt", "🔒", "vor 4 Min"},
		{"WhatsApp", "Freund", "Bringst du Chips mit?", "🥔", "jetzt"},
		{"Kalender", "Erinnerung", "Arzttermin morgen", "📅", "vor 8 Min"},
	},
}

// temptingApps split the phone table in half: everything else counts as
// realistic, including neutral apps like calls.
var temptingApps = map[string]bool{
	"Discord": true, "YouTube": true, "Instagram": true, "TikTok": true,
	"WhatsApp": true, "Lieferando": true, "Spotify": true,
}

type todoMapping struct {
	App   string
	Text  string
	Todos []string
}

var todoMappings = map[domain.Environment][]todoMapping{
	domain.EnvDesk: {
		{"Discord", "Eine Runde zocken?", []string{"Mit Freunden zocken", "Discord beantworten", "Kurz Discord öffnen"}},
		{"YouTube", "Neues Video von deinem Lieblingskanal", []string{"YouTube-Video anschauen", "YouTube Shorts checken"}},
		{"Steam", "Download bereit: 47 GB", []string{"Spiel-Update installieren", "Steam-Update starten"}},
		{"Instagram", "hat dein Foto geliked", []string{"Instagram checken", "Auf Instagram reagieren"}},
		{"TikTok", "12 neue Videos für dich", []string{"TikTok durchscrollen", "TikTok öffnen"}},
		{"Spotify", "Deine Wochenübersicht ist da", []string{"Spotify Playlist hören", "Musik wechseln"}},
		{"Slack", "Kurzer Ping: hast du kurz Zeit?", []string{"Auf Slack antworten", "Slack kurz checken"}},
		{"Kalender", "Meeting in 30 Minuten", []string{"Meeting vorbereiten", "Meeting-Link raussuchen"}},
		{"Mail", "Reminder: Abgabe heute 23:59", []string{"Abgabe fertig machen", "Abgabe checken", "Letzte Korrektur Abgabe"}},
		{"GitHub", "Build fehlgeschlagen: Tests rot", []string{"Build-Fehler fixen", "Tests reparieren", "CI Log anschauen"}},
		{"Lieferando", "Heute 2 für 1 auf Pizza", []string{"Pizza bestellen", "Essen planen"}},
		{"Wetter", "Regen in 20 Minuten", []string{"Fenster schließen", "Jacke bereitlegen"}},
	},
	domain.EnvHoersaal: {
		{"Mail", "Klausurtermin verschoben", []string{"Klausurtermin notieren", "Klausurplanung anpassen"}},
		{"WhatsApp", "Kommst du heute zum Lernen?", []string{"Lerngruppe besuchen", "Auf WhatsApp antworten"}},
		{"Kalender", "Abgabe Hausarbeit in 2 Tagen", []string{"Hausarbeit abgeben", "Hausarbeit finalisieren"}},
		{"Moodle", "Übungsblatt 7 hochgeladen", []string{"Übungsblatt 7 bearbeiten", "Moodle checken"}},
		{"CampusApp", "Raumänderung: Hörsaal B statt A", []string{"Raumwechsel merken", "Zum neuen Raum gehen"}},
		{"Telegram", "Hat jemand die Folien?", []string{"Folien organisieren", "Im Kurschat fragen"}},
		{"Anruf", "Eingehender Anruf...", []string{"Anruf beantworten", "Anruf wegdrücken"}},
	},
	domain.EnvSupermarkt: {
		{"Einkaufsliste", "Noch 3 Artikel übrig", []string{"Restliche 3 Artikel finden", "Einkaufsliste weiter abarbeiten"}},
		{"Payback", "20% auf Getränke heute!", []string{"Getränke kaufen", "Payback-Angebot nutzen"}},
		{"WhatsApp", "Vergiss die Milch nicht!", []string{"Milch kaufen", "Auf WhatsApp antworten"}},
		{"Banking", "Abbuchung: -47,23€", []string{"Kontostand prüfen", "Ausgaben checken"}},
		{"Lieferando", "Pizza bestellen & sparen", []string{"Pizza bestellen", "Abendessen planen"}},
		{"Anruf", "Eingehender Anruf...", []string{"Anruf beantworten", "Später zurückrufen"}},
		{"REWE", "Coupon verfügbar: -10% auf Obst", []string{"Obst kaufen", "Coupon aktivieren"}},
		{"Maps", "Parkzeit läuft bald ab", []string{"Parkzeit prüfen", "Parkticket verlängern"}},
		{"PayPal", "Neue Anmeldung erkannt", []string{"PayPal checken", "Passwort ändern"}},
		{"WhatsApp", "Bringst du Chips mit?", []string{"Chips kaufen", "Snack-Regal checken"}},
		{"Kalender", "Arzttermin morgen", []string{"Arzttermin wahrnehmen", "Arztunterlagen raussuchen"}},
	},
}

// todosFor returns the task candidates mapped to a phone notification.
func todosFor(env domain.Environment, n PhoneNotification) []string {
	for _, m := range todoMappings[env] {
		if m.App == n.App && (m.Text == "" || strings.HasPrefix(n.Text, m.Text)) {
			return m.Todos
		}
	}
	return nil
}

// SoundSpec describes how a sound kind is played.
type SoundSpec struct {
	File        string
	MaxDuration time.Duration
	Volume      float64
	Repeat      int
	RepeatGap   time.Duration
}

const (
	fileKeyboard  = "CD_MACBOOK PRO LAPTOP KEYBOARD 01_10_08_13.wav"
	fileNotify    = "MultimediaNotify_S011TE.579.wav"
	fileWood      = "Wood_Creaks_01_BTM00499.wav"
	fileSteps     = "WalkWoodFloor_BWU.39.wav"
	fileFan       = "computer-fan-75947.mp3"
	fileWhispers  = "SFX,Whispers,Layered,Verb.wav"
	fileNeighbors = "neighborhood-noise-background-33025-320959.mp3"
)

func secs(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

var sounds = map[domain.SoundKind]SoundSpec{
	domain.SoundPenClick:      {File: "PencilWrite_S08OF.380.wav", MaxDuration: secs(0.7), Volume: 0.20},
	domain.SoundKeyboard:      {File: fileKeyboard, MaxDuration: secs(1.7), Volume: 0.22},
	domain.SoundPhoneVibrate:  {File: "cell-phone-vibration-352298.mp3", MaxDuration: secs(0.9), Volume: 0.30},
	domain.SoundNotification:  {File: fileNotify, MaxDuration: secs(0.8), Volume: 0.26},
	domain.SoundCough:         {File: "horrible-female-cough-66368.mp3", MaxDuration: secs(1.4), Volume: 0.30},
	domain.SoundChairCreak:    {File: fileWood, MaxDuration: secs(1.0), Volume: 0.20},
	domain.SoundDoorSlam:      {File: fileWood, MaxDuration: secs(0.9), Volume: 0.32},
	domain.SoundSteps:         {File: fileSteps, MaxDuration: secs(1.8), Volume: 0.22},
	domain.SoundPCFan:         {File: fileFan, MaxDuration: secs(3.0), Volume: 0.10},
	domain.SoundMouseClick:    {File: fileKeyboard, MaxDuration: secs(0.28), Volume: 0.14},
	domain.SoundNeighborNoise: {File: fileNeighbors, MaxDuration: secs(2.4), Volume: 0.20},
	domain.SoundPaperRustle:   {File: fileWhispers, MaxDuration: secs(3.2), Volume: 0.18},
	domain.SoundWhisper:       {File: fileWhispers, MaxDuration: secs(3.0), Volume: 0.17},
	domain.SoundAnnouncement:  {File: "supermarket-17823.mp3", MaxDuration: secs(2.0), Volume: 0.14},
	domain.SoundShoppingCart:  {File: "ShoppingCartTurn_S011IN.548.wav", MaxDuration: secs(1.3), Volume: 0.24},
	domain.SoundCashRegister:  {File: fileNotify, MaxDuration: secs(0.28), Volume: 0.20, Repeat: 3, RepeatGap: 520 * time.Millisecond},
	domain.SoundKidCrying:     {File: "baby-crying-463213.mp3", MaxDuration: secs(1.8), Volume: 0.30},
	domain.SoundFootsteps:     {File: fileSteps, MaxDuration: secs(1.9), Volume: 0.18},
	domain.SoundFridgeHum:     {File: fileFan, MaxDuration: secs(3.5), Volume: 0.10},
	domain.SoundProductDrop:   {File: fileWood, MaxDuration: secs(0.6), Volume: 0.26},
	domain.SoundChatter:       {File: "indistinct-deep-male-mumble-14786.mp3", MaxDuration: secs(1.8), Volume: 0.12},
	domain.SoundCelebrate:     {File: fileNotify, MaxDuration: secs(0.8), Volume: 0.30},
	domain.SoundTaskToggle:    {File: fileNotify, MaxDuration: secs(0.6), Volume: 0.30},
	domain.SoundElectricTick:  {MaxDuration: 55 * time.Millisecond, Volume: 0.06},
}

// Sound returns the playback settings for kind.
func Sound(kind domain.SoundKind) SoundSpec {
	return sounds[kind]
}

// AmbientSpec is an environment's background loop. Position is relative
// to the listener; nil plays it unplaced.
type AmbientSpec struct {
	Name       string
	File       string
	Volume     float64
	Pan        float64
	RateJitter float64
	Position   *domain.Vec3
}

var ambients = map[domain.Environment]AmbientSpec{
	domain.EnvDesk: {
		Name:     "Nachbarschaft",
		File:     fileNeighbors,
		Volume:   0.10,
		Pan:      -0.55,
		Position: &domain.Vec3{X: -1.6, Y: 0.10, Z: 1.25},
	},
	domain.EnvHoersaal: {
		Name:       "Professor",
		File:       "indistinct-deep-male-mumble-14786.mp3",
		Volume:     0.18,
		RateJitter: 0.1,
		Position:   &domain.Vec3{X: 0, Y: 1.2, Z: -3.2},
	},
	domain.EnvSupermarkt: {
		Name:   "Supermarkt",
		File:   "supermarket-17823.mp3",
		Volume: 0.18,
	},
}

// Ambient returns the background loop of env.
func Ambient(env domain.Environment) (AmbientSpec, bool) {
	a, ok := ambients[env]
	return a, ok
}

// Scene dimming that accompanies moving objects and room flashes.
const (
	dimFactor          = 0.3
	dimMovingDesk      = 700 * time.Millisecond
	dimMovingElsewhere = 1500 * time.Millisecond
	dimFlashExtra      = 500 * time.Millisecond
)

var audioBags = map[domain.Environment][]domain.SoundKind{
	domain.EnvDesk: {
		domain.SoundKeyboard, domain.SoundPhoneVibrate, domain.SoundDoorSlam, domain.SoundSteps,
		domain.SoundPCFan, domain.SoundMouseClick, domain.SoundNeighborNoise,
	},
	domain.EnvHoersaal: {
		domain.SoundPenClick, domain.SoundPaperRustle, domain.SoundCough, domain.SoundChairCreak,
		domain.SoundPhoneVibrate, domain.SoundWhisper, domain.SoundDoorSlam, domain.SoundSteps,
	},
	domain.EnvSupermarkt: {
		domain.SoundAnnouncement, domain.SoundShoppingCart, domain.SoundCashRegister, domain.SoundKidCrying,
		domain.SoundFootsteps, domain.SoundFridgeHum, domain.SoundProductDrop, domain.SoundChatter,
	},
}

// audioExtras are appended at level 2 and again at level 3.
var audioExtras = map[domain.Environment][2][]domain.SoundKind{
	domain.EnvDesk: {
		{domain.SoundNeighborNoise, domain.SoundPCFan},
		{domain.SoundPhoneVibrate, domain.SoundMouseClick},
	},
	domain.EnvHoersaal: {
		{domain.SoundCough, domain.SoundWhisper},
		{domain.SoundChairCreak, domain.SoundSteps},
	},
	domain.EnvSupermarkt: {
		{domain.SoundShoppingCart, domain.SoundChatter},
		{domain.SoundKidCrying, domain.SoundCashRegister},
	},
}

func audioBag(env domain.Environment, level domain.Level, state domain.TaskState, reentry bool) []domain.SoundKind {
	base, ok := audioBags[env]
	if !ok {
		base = audioBags[domain.EnvDesk]
	}
	bag := append([]domain.SoundKind(nil), base...)
	extras := audioExtras[env]
	if level >= domain.LevelMedium {
		bag = append(bag, extras[0]...)
	}
	if level >= domain.LevelHigh {
		bag = append(bag, extras[1]...)
	}
	if env != domain.EnvDesk {
		return bag
	}
	switch state {
	case domain.StateProcrastinating:
		bag = append(bag, domain.SoundPhoneVibrate, domain.SoundMouseClick, domain.SoundNeighborNoise)
	case domain.StateWorking:
		bag = append(bag, domain.SoundKeyboard, domain.SoundKeyboard)
		if reentry {
			bag = without(bag, domain.SoundPhoneVibrate, domain.SoundMouseClick)
			bag = append(bag, domain.SoundKeyboard, domain.SoundKeyboard, domain.SoundPCFan)
		}
	}
	return bag
}

// spatialHint is a camera-relative source position with jitter amplitudes.
type spatialHint struct {
	pos, jitter domain.Vec3
	pan, volume float64
	// seat hints are mirrored to a random side of the lecture hall.
	seat bool
}

var deskSpatial = map[domain.SoundKind]spatialHint{
	domain.SoundKeyboard:      {pos: domain.Vec3{X: 0.15, Y: -0.10, Z: -0.55}, jitter: domain.Vec3{X: 0.08, Y: 0.05, Z: 0.10}, pan: 0, volume: 0.22},
	domain.SoundMouseClick:    {pos: domain.Vec3{X: 0.35, Y: -0.12, Z: -0.55}, jitter: domain.Vec3{X: 0.10, Y: 0.06, Z: 0.10}, pan: 0.18, volume: 0.18},
	domain.SoundPCFan:         {pos: domain.Vec3{X: -0.55, Y: -0.05, Z: -0.95}, jitter: domain.Vec3{X: 0.12, Y: 0.05, Z: 0.18}, pan: -0.15, volume: 0.14},
	domain.SoundPhoneVibrate:  {pos: domain.Vec3{X: 0.45, Y: -0.20, Z: -0.55}, jitter: domain.Vec3{X: 0.10, Y: 0.06, Z: 0.12}, pan: 0.25, volume: 0.26},
	domain.SoundDoorSlam:      {pos: domain.Vec3{X: 1.10, Y: 0.15, Z: 1.60}, jitter: domain.Vec3{X: 0.20, Y: 0.08, Z: 0.25}, pan: 0.65, volume: 0.26},
	domain.SoundSteps:         {pos: domain.Vec3{X: -1.10, Y: 0.00, Z: 1.20}, jitter: domain.Vec3{X: 0.22, Y: 0.05, Z: 0.25}, pan: -0.55, volume: 0.20},
	domain.SoundNeighborNoise: {pos: domain.Vec3{X: -1.25, Y: 0.10, Z: 0.80}, jitter: domain.Vec3{X: 0.25, Y: 0.06, Z: 0.25}, pan: -0.60, volume: 0.18},
}

var hoersaalSpatial = map[domain.SoundKind]spatialHint{
	domain.SoundPenClick:     {pos: domain.Vec3{Y: -0.05}, jitter: domain.Vec3{X: 0.15, Y: 0.08, Z: 0.25}, pan: 0.35, volume: 0.20, seat: true},
	domain.SoundPaperRustle:  {pos: domain.Vec3{Y: -0.02}, jitter: domain.Vec3{X: 0.18, Y: 0.08, Z: 0.30}, pan: 0.25, volume: 0.18, seat: true},
	domain.SoundWhisper:      {pos: domain.Vec3{X: -1.2, Y: 0.10, Z: 1.3}, jitter: domain.Vec3{X: 0.35, Y: 0.10, Z: 0.40}, pan: -0.45, volume: 0.16},
	domain.SoundCough:        {pos: domain.Vec3{Y: 0.05}, jitter: domain.Vec3{X: 0.22, Y: 0.08, Z: 0.25}, pan: 0.30, volume: 0.22, seat: true},
	domain.SoundChairCreak:   {pos: domain.Vec3{Y: -0.10}, jitter: domain.Vec3{X: 0.20, Y: 0.08, Z: 0.25}, pan: 0.22, volume: 0.18, seat: true},
	domain.SoundDoorSlam:     {pos: domain.Vec3{X: 0.0, Y: 0.15, Z: 2.0}, jitter: domain.Vec3{X: 0.35, Y: 0.10, Z: 0.35}, pan: 0, volume: 0.22},
	domain.SoundSteps:        {pos: domain.Vec3{X: 0.8, Y: 0.00, Z: 2.2}, jitter: domain.Vec3{X: 0.35, Y: 0.08, Z: 0.40}, pan: 0.35, volume: 0.18},
	domain.SoundPhoneVibrate: {pos: domain.Vec3{X: 0.55, Y: -0.15, Z: -0.60}, jitter: domain.Vec3{X: 0.18, Y: 0.06, Z: 0.15}, pan: 0.20, volume: 0.22},
}

var supermarktSpatial = map[domain.SoundKind]spatialHint{
	domain.SoundAnnouncement: {pos: domain.Vec3{X: 0.0, Y: 1.35, Z: -2.6}, jitter: domain.Vec3{X: 0.20, Y: 0.20, Z: 0.45}, pan: 0, volume: 0.16},
	domain.SoundShoppingCart: {pos: domain.Vec3{X: -1.2, Y: 0.00, Z: -1.4}, jitter: domain.Vec3{X: 0.35, Y: 0.08, Z: 0.35}, pan: -0.40, volume: 0.20},
	domain.SoundCashRegister: {pos: domain.Vec3{X: 1.6, Y: 0.10, Z: -2.4}, jitter: domain.Vec3{X: 0.45, Y: 0.10, Z: 0.55}, pan: 0.55, volume: 0.20},
	domain.SoundKidCrying:    {pos: domain.Vec3{X: 1.2, Y: 0.10, Z: -1.2}, jitter: domain.Vec3{X: 0.35, Y: 0.10, Z: 0.35}, pan: 0.45, volume: 0.20},
	domain.SoundFootsteps:    {pos: domain.Vec3{X: -0.6, Y: 0.00, Z: 1.8}, jitter: domain.Vec3{X: 0.40, Y: 0.08, Z: 0.45}, pan: -0.20, volume: 0.16},
	domain.SoundFridgeHum:    {pos: domain.Vec3{X: -2.2, Y: -0.05, Z: -1.6}, jitter: domain.Vec3{X: 0.40, Y: 0.08, Z: 0.40}, pan: -0.65, volume: 0.12},
	domain.SoundProductDrop:  {pos: domain.Vec3{X: 1.0, Y: -0.10, Z: -0.9}, jitter: domain.Vec3{X: 0.40, Y: 0.06, Z: 0.35}, pan: 0.35, volume: 0.22},
	domain.SoundChatter:      {pos: domain.Vec3{X: -0.2, Y: 0.30, Z: -2.0}, jitter: domain.Vec3{X: 0.60, Y: 0.20, Z: 0.55}, pan: 0, volume: 0.14},
}

var spatialHints = map[domain.Environment]map[domain.SoundKind]spatialHint{
	domain.EnvDesk:       deskSpatial,
	domain.EnvHoersaal:   hoersaalSpatial,
	domain.EnvSupermarkt: supermarktSpatial,
}

// fallbackPanWidth bounds the random pan of sounds without a hint.
var fallbackPanWidth = [4]float64{0.30, 0.30, 0.45, 0.6}
