package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name:        "high-contrast",
	BorderStyle: "sharp",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Message: MessageColors{
		Own:   "87",
		Other: "225",
	},
	Badge: BadgeColors{
		Unread:   "226",
		ReadTick: "51",
		SentTick: "250",
	},
	Chrome: ChromeColors{
		Header:      "17",
		Footer:      "17",
		SelectedRow: "51",
		Separator:   "250",
		Notice:      "196",
	},
	Borders: BorderColors{
		ActivePane:   "231",
		InactivePane: "250",
		Divider:      "248",
	},
}
