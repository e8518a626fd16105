package addon

// Category is the kind of an add-on.
type Category string

const (
	Dictionary Category = "dictionary"
	Extension  Category = "extension"
	Locale     Category = "locale"
	Plugin     Category = "plugin"
	Theme      Category = "theme"
)

// Categories returns every known category.
func Categories() []Category {
	return []Category{Dictionary, Extension, Locale, Plugin, Theme}
}

// ParseCategory converts a string to a Category, returning false if invalid.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "extension":
		return Extension, true
	case "plugin":
		return Plugin, true
	case "dictionary":
		return Dictionary, true
	case "locale":
		return Locale, true
	case "theme":
		return Theme, true
	default:
		return "", false
	}
}

// Plural returns the plural form of the category name.
func (c Category) Plural() string {
	if c == Dictionary {
		return "dictionaries"
	}
	return string(c) + "s"
}

// CategoryFromPlural maps a plural directory name such as "themes" back to
// its category.
func CategoryFromPlural(s string) (Category, bool) {
	for _, c := range Categories() {
		if c.Plural() == s {
			return c, true
		}
	}
	return "", false
}
