package webapi

import (
	"time"

	"github.com/plazor/steampicker/internal/domain/catalog"
	"github.com/plazor/steampicker/internal/domain/model"
)

func mapProfile(p rawPlayer) *model.PlayerProfile {
	// A payload without a visibility state is treated as private.
	visibility := p.Visibility
	if visibility == 0 {
		visibility = model.VisibilityPrivate
	}
	return &model.PlayerProfile{
		PersonaName: p.PersonaName,
		Avatar:      p.AvatarFull,
		ProfileURL:  p.ProfileURL,
		Country:     p.CountryCode,
		Visibility:  visibility,
		LastLogoff:  unixTime(p.LastLogoffUnix),
	}
}

func mapOwnedGame(g rawOwnedGame) model.LibraryEntry {
	return model.LibraryEntry{
		AppID:        g.AppID,
		Name:         g.Name,
		Header:       catalog.HeaderURL(g.AppID),
		Minutes:      g.PlaytimeForever,
		LastPlayedAt: unixTime(g.LastPlayedUnix),
	}
}

func mapRecentGame(g rawRecentGame) model.LibraryEntry {
	return model.LibraryEntry{
		AppID:        g.AppID,
		Name:         g.Name,
		Header:       catalog.HeaderURL(g.AppID),
		Minutes:      g.PlaytimeForever,
		Minutes2W:    g.Playtime2Weeks,
		LastPlayedAt: unixTime(g.LastPlayedUnix),
	}
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
