package workflow

import (
	"fmt"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/command"
	"github.com/agentx-labs/addonctl/internal/markup"
)

// enSpace separates name and version in list entries.
const enSpace = "\u2002"

func represent(e addon.Entity) string {
	return e.Name() + " " + e.Version()
}

func listHeading(c addon.Category) string {
	return "The following " + c.Plural() + " are currently installed:"
}

func listEntry(e addon.Entity) string {
	text := markup.Literal(e.Name() + enSpace + e.Version())
	if e.Disabled() {
		return markup.StruckItem(text)
	}
	return markup.Item(text)
}

func listHint() string {
	return "To see the other add-ons, provide the type parameter like so " + markup.Code("addon list plugin") + "."
}

func unknownTypeMessage(t string) string {
	return `Unknown type "` + markup.Literal(t) + `". Perhaps you meant ` + markup.Code("addon list extension") + "."
}

func readFailedMessage(err error) string {
	return "Could not read the installed add-ons: " + markup.Literal(err.Error()) + "."
}

func enabledMessage(e addon.Entity) string {
	return markup.Literal(represent(e)) + " has been enabled."
}

func disabledMessage(e addon.Entity) string {
	return markup.Literal(represent(e)) + " has been disabled."
}

func uninstalledMessage(e addon.Entity) string {
	return markup.Literal(represent(e)) + " has been uninstalled."
}

func actionFailedMessage(action string, e addon.Entity, err error) string {
	return "Could not " + action + " " + markup.Literal(represent(e)) + ": " + markup.Literal(err.Error()) + "."
}

const (
	notFoundMessage     = "This add-on was not found."
	couldNotFindMessage = "Could not find the add-on."
	searchFailedMessage = "Search failed. Perhaps no connection to the add-on repository could be made."
	installUnavailable  = "The add-on was found, but the repository offered no way to install it."
)

func busyMessage(name string) string {
	return "Unable to install. Another search for add-ons is already in progress. If you feel this search is taking too long, use " +
		markup.Code(markup.Literal(command.Quote("addon", "install", name, "true"))) + " to cancel it."
}

func searchCancelledMessage(name string) string {
	return "The search for " + markup.Literal(name) + " was cancelled by a newer install command."
}

func alreadyInstalledMessage(e addon.Entity) string {
	return markup.Literal(represent(e)) + " is already installed."
}

func suggestionMessage(name string) string {
	return "Could not find the add-on. Perhaps you meant " + markup.Code(markup.Literal(command.Quote("addon", "install", name))) + "."
}

func installedMessage(e addon.Entity) string {
	return markup.Literal(represent(e)) + " has been installed."
}

func installFailedMessage(name string, err error) string {
	msg := "Installation of " + markup.Literal(name) + " failed"
	if err != nil {
		msg += ": " + markup.Literal(err.Error())
	}
	return msg + "."
}

func installCancelledMessage(name string) string {
	return "Installation of " + markup.Literal(name) + " was cancelled."
}

func downloadingProgress(name string) string {
	return "Downloading " + markup.Literal(name) + "…"
}

func downloadAtProgress(done, total int64) string {
	return fmt.Sprintf("Download at %d%%.", done*100/total)
}

func installingProgress(name string) string {
	return "Installing " + markup.Literal(name) + "…"
}
