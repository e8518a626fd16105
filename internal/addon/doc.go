// Package addon defines installable add-ons and the contracts of the
// collaborators that own them: the manager that enumerates installed
// add-ons, the repository that searches for new ones, and the install
// handles whose lifecycle a listener follows from download to completion.
package addon
