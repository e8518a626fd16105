package addon

// Entity is an installed or installable add-on.
type Entity interface {
	Name() string
	Version() string
	Category() Category
	// Disabled reports whether the user turned the add-on off.
	Disabled() bool
	SetDisabled(disabled bool) error
	Uninstall() error
}

// Manager enumerates installed add-ons. The callback may run on another
// goroutine, after AddonsByCategory has returned.
type Manager interface {
	AddonsByCategory(category Category, fn func([]Entity, error))
}

// SearchResult is one add-on offered by a repository search.
type SearchResult struct {
	Name    string
	Version string
	Install InstallHandle
}

// SearchCallback receives the outcome of a repository search. Exactly one of
// its methods is called per search, unless the search is cancelled, in which
// case neither is.
type SearchCallback interface {
	SearchSucceeded(results []SearchResult, total int)
	SearchFailed()
}

// Repository searches for installable add-ons. At most one search runs at a time.
type Repository interface {
	IsSearching() bool
	CancelSearch()
	SearchAddons(query string, maxResults int, cb SearchCallback)
}

// InstallHandle drives the download and installation of one add-on.
type InstallHandle interface {
	ID() string
	AddListener(l InstallListener)
	Install()
	Cancel()
}
