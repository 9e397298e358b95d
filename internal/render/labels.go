package render

import (
	"strings"

	"golang.org/x/text/language"
)

// Labels are the fixed UI strings of the generated site.
type Labels struct {
	Lang string // BCP 47 tag written to <html lang>
	Dir  string // rtl|ltr

	SiteTitle     string
	Subtitle      string
	Footer        string
	Home          string
	Lesson        string
	LessonMap     string
	Prev          string
	Next          string
	BackToIndex   string
	Note          string
	Sections      string
	IndexSubtitle string
	IndexFooter   string
	LessonCount   string
	BuiltAt       string
	SearchLabel   string
	SearchHint    string
	LessonsTitle  string
	CountTemplate string // {shown} and {total} are replaced client-side

	RetrofitSubtitle string
	SidebarToggle    string
}

var persian = Labels{
	Lang:             "fa",
	Dir:              "rtl",
	SiteTitle:        "درسنامه",
	Subtitle:         "درسنامه ساختاریافته • مبتنی بر داده‌های JSON",
	Footer:           "درسنامه • خروجی چندصفحه‌ای",
	Home:             "خانه",
	Lesson:           "درس",
	LessonMap:        "نقشه درس",
	Prev:             "→ قبلی",
	Next:             "بعدی ←",
	BackToIndex:      "بازگشت به فهرست",
	Note:             "نکته",
	Sections:         "بخش",
	IndexSubtitle:    "فهرست درس‌ها",
	IndexFooter:      "Static Site Builder",
	LessonCount:      "درس‌ها:",
	BuiltAt:          "ساخته‌شده:",
	SearchLabel:      "جست‌وجو در عنوان درس",
	SearchHint:       "جست‌وجو...",
	LessonsTitle:     "درس‌ها",
	CountTemplate:    "نمایش {shown} از {total}",
	RetrofitSubtitle: "درسنامه ساختاریافته",
	SidebarToggle:    "فهرست",
}

var english = Labels{
	Lang:             "en",
	Dir:              "ltr",
	SiteTitle:        "Lessons",
	Subtitle:         "Structured lessons • generated from JSON data",
	Footer:           "Lessons • multi-page output",
	Home:             "Home",
	Lesson:           "Lesson",
	LessonMap:        "Lesson map",
	Prev:             "← Previous",
	Next:             "Next →",
	BackToIndex:      "Back to index",
	Note:             "Note",
	Sections:         "sections",
	IndexSubtitle:    "All lessons",
	IndexFooter:      "Static Site Builder",
	LessonCount:      "Lessons:",
	BuiltAt:          "Built:",
	SearchLabel:      "Search lesson titles",
	SearchHint:       "Search...",
	LessonsTitle:     "Lessons",
	CountTemplate:    "Showing {shown} of {total}",
	RetrofitSubtitle: "Structured lessons",
	SidebarToggle:    "Contents",
}

var (
	supported = []language.Tag{language.Persian, language.English}
	catalog   = []Labels{persian, english}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor returns the label set best matching lang. Unknown or empty tags
// get the Persian set.
func LabelsFor(lang string) Labels {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return persian
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return persian
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return persian
	}
	return catalog[idx]
}
