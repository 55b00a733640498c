package imap

import (
	"strings"

	"github.com/customeros/mailsweep/internal/models"
)

// commonTrashNames are exact folder names used by widespread providers,
// including the Japanese trash-box spellings.
var commonTrashNames = []string{
	"Trash",
	"INBOX.Trash",
	"INBOX/Trash",
	"Deleted Items",
	"Deleted Messages",
	"[Gmail]/Trash",
	"ゴミ箱",
	"ごみ箱",
}

// ResolveTrash picks the best-guess trash folder from a listing. Strategies
// in priority order:
//
//  1. a folder advertising a \Trash attribute
//  2. an exact match against the common provider names
//  3. any folder whose name contains "trash" case-insensitively
//
// Returns ok=false when no strategy hits; callers must then downgrade trash
// actions to skips. The caller is expected to cache the result for the
// lifetime of the session.
func ResolveTrash(folders []models.Folder) (string, bool) {
	for _, folder := range folders {
		if !folder.Valid() {
			continue
		}
		for _, attribute := range folder.Attributes {
			if strings.Contains(strings.ToLower(attribute), "trash") {
				return folder.Name, true
			}
		}
	}

	for _, name := range commonTrashNames {
		for _, folder := range folders {
			if folder.Name == name && folder.Valid() {
				return folder.Name, true
			}
		}
	}

	for _, folder := range folders {
		if folder.Valid() && strings.Contains(strings.ToLower(folder.Name), "trash") {
			return folder.Name, true
		}
	}

	return "", false
}
