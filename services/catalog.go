package services

import "sort"

// MilestoneDefinition is one immutable entry of the milestone catalog.
type MilestoneDefinition struct {
	Day          int    `json:"day"`
	Title        string `json:"title"`
	DisplayName  string `json:"display_name"`
	Meaning      string `json:"meaning"`
	Scripture    string `json:"scripture,omitempty"`
	ScriptureRef string `json:"scripture_ref,omitempty"`
	Icon         string `json:"icon"`
	ColorStart   string `json:"color_start"`
	ColorEnd     string `json:"color_end"`
}

// milestoneCatalog is kept sorted ascending by Day. The ordering is asserted
// at init time rather than trusted from the literal.
var milestoneCatalog = []MilestoneDefinition{
	{Day: 0, Title: "The Decision", DisplayName: "Day Zero", Meaning: "You chose a different path today. That choice is the foundation everything else is built on.", Scripture: "Behold, I make all things new.", ScriptureRef: "Revelation 21:5", Icon: "seedling", ColorStart: "#E8F5E9", ColorEnd: "#A5D6A7"},
	{Day: 1, Title: "First Light", DisplayName: "One Day", Meaning: "One full day of keeping your word to yourself.", Scripture: "His mercies are new every morning.", ScriptureRef: "Lamentations 3:23", Icon: "sunrise", ColorStart: "#FFF8E1", ColorEnd: "#FFE082"},
	{Day: 3, Title: "Foothold", DisplayName: "Three Days", Meaning: "The hardest first days are behind you. You are building a foothold.", Scripture: "A cord of three strands is not quickly broken.", ScriptureRef: "Ecclesiastes 4:12", Icon: "footprints", ColorStart: "#E3F2FD", ColorEnd: "#90CAF9"},
	{Day: 7, Title: "One Week Strong", DisplayName: "Seven Days", Meaning: "A full week. Your mind is already beginning to clear.", Scripture: "On the seventh day he rested from all his work.", ScriptureRef: "Genesis 2:2", Icon: "shield", ColorStart: "#E8EAF6", ColorEnd: "#9FA8DA"},
	{Day: 14, Title: "Fortnight", DisplayName: "Two Weeks", Meaning: "Two weeks of daily decisions, stacked into something real.", Scripture: "Let us not grow weary of doing good.", ScriptureRef: "Galatians 6:9", Icon: "mountain", ColorStart: "#F3E5F5", ColorEnd: "#CE93D8"},
	{Day: 30, Title: "One Month", DisplayName: "Thirty Days", Meaning: "A month of freedom. New habits are taking root.", Scripture: "Be transformed by the renewal of your mind.", ScriptureRef: "Romans 12:2", Icon: "tree", ColorStart: "#E0F2F1", ColorEnd: "#80CBC4"},
	{Day: 50, Title: "Half Century", DisplayName: "Fifty Days", Meaning: "Fifty days. The old patterns are losing their grip.", Scripture: "The truth will set you free.", ScriptureRef: "John 8:32", Icon: "flame", ColorStart: "#FBE9E7", ColorEnd: "#FFAB91"},
	{Day: 60, Title: "Two Months", DisplayName: "Sixty Days", Meaning: "Two months of showing up for yourself, every single day.", Scripture: "I can do all things through him who strengthens me.", ScriptureRef: "Philippians 4:13", Icon: "anchor", ColorStart: "#E1F5FE", ColorEnd: "#81D4FA"},
	{Day: 75, Title: "Three Quarters", DisplayName: "Seventy-Five Days", Meaning: "Seventy-five days of discipline most people never attempt.", Scripture: "Run with endurance the race set before you.", ScriptureRef: "Hebrews 12:1", Icon: "runner", ColorStart: "#FFF3E0", ColorEnd: "#FFCC80"},
	{Day: 90, Title: "Quarter Year", DisplayName: "Ninety Days", Meaning: "Ninety days is where rewiring becomes renewal.", Scripture: "The old has passed away; behold, the new has come.", ScriptureRef: "2 Corinthians 5:17", Icon: "star", ColorStart: "#FFFDE7", ColorEnd: "#FFF59D"},
	{Day: 120, Title: "Four Months", DisplayName: "One Hundred Twenty Days", Meaning: "A third of a year. This is who you are now.", Scripture: "He who began a good work in you will carry it on.", ScriptureRef: "Philippians 1:6", Icon: "compass", ColorStart: "#EDE7F6", ColorEnd: "#B39DDB"},
	{Day: 150, Title: "Five Months", DisplayName: "One Hundred Fifty Days", Meaning: "Five months of walking in the right direction.", Scripture: "Your word is a lamp to my feet.", ScriptureRef: "Psalm 119:105", Icon: "lantern", ColorStart: "#E0F7FA", ColorEnd: "#80DEEA"},
	{Day: 270, Title: "Nine Months", DisplayName: "Two Hundred Seventy Days", Meaning: "Nine months. Long enough for a whole new life to form.", Scripture: "Those who hope in the Lord will renew their strength.", ScriptureRef: "Isaiah 40:31", Icon: "eagle", ColorStart: "#ECEFF1", ColorEnd: "#B0BEC5"},
	{Day: 365, Title: "One Year Free", DisplayName: "Three Hundred Sixty-Five Days", Meaning: "A full year. What was once unthinkable is now your story.", Scripture: "He crowns the year with his bounty.", ScriptureRef: "Psalm 65:11", Icon: "crown", ColorStart: "#FFF8E1", ColorEnd: "#FFD54F"},
}

func init() {
	if !sort.SliceIsSorted(milestoneCatalog, func(i, j int) bool {
		return milestoneCatalog[i].Day < milestoneCatalog[j].Day
	}) {
		panic("milestone catalog must be sorted ascending by day")
	}
}

// Catalog returns a copy of the full milestone catalog, ascending by day.
func Catalog() []MilestoneDefinition {
	out := make([]MilestoneDefinition, len(milestoneCatalog))
	copy(out, milestoneCatalog)
	return out
}

// ReachedMilestones returns all definitions with Day <= days, ascending.
func ReachedMilestones(days int) []MilestoneDefinition {
	idx := sort.Search(len(milestoneCatalog), func(i int) bool {
		return milestoneCatalog[i].Day > days
	})
	out := make([]MilestoneDefinition, idx)
	copy(out, milestoneCatalog[:idx])
	return out
}

// HighestReached returns the highest definition with Day <= days.
func HighestReached(days int) (MilestoneDefinition, bool) {
	idx := sort.Search(len(milestoneCatalog), func(i int) bool {
		return milestoneCatalog[i].Day > days
	})
	if idx == 0 {
		return MilestoneDefinition{}, false
	}
	return milestoneCatalog[idx-1], true
}

// MilestoneByDay looks up the definition for an exact day threshold.
func MilestoneByDay(day int) (MilestoneDefinition, bool) {
	idx := sort.Search(len(milestoneCatalog), func(i int) bool {
		return milestoneCatalog[i].Day >= day
	})
	if idx < len(milestoneCatalog) && milestoneCatalog[idx].Day == day {
		return milestoneCatalog[idx], true
	}
	return MilestoneDefinition{}, false
}
