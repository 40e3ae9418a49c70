package styles

// DefaultTheme is the baseline dark palette for the chat widget.
var DefaultTheme = Theme{
	Name:        "default",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "178",
		Border:     "240",
	},
	Message: MessageColors{
		Own:   "178",
		Other: "252",
	},
	Badge: BadgeColors{
		Unread:   "178",
		ReadTick: "75",
		SentTick: "245",
	},
	Chrome: ChromeColors{
		Header:      "94",
		Footer:      "237",
		SelectedRow: "178",
		Separator:   "245",
		Notice:      "203",
	},
	Borders: BorderColors{
		ActivePane:   "178",
		InactivePane: "240",
		Divider:      "238",
	},
}
