package webapi

// Raw payload shapes for the Steam Web API. Fields left out here are
// intentionally dropped; missing fields decode to zero values and are
// defaulted during mapping.

const vanitySuccess = 1

type playerSummariesResponse struct {
	Response struct {
		Players []rawPlayer `json:"players"`
	} `json:"response"`
}

type rawPlayer struct {
	PersonaName    string `json:"personaname"`
	AvatarFull     string `json:"avatarfull"`
	ProfileURL     string `json:"profileurl"`
	CountryCode    string `json:"loccountrycode"`
	Visibility     int    `json:"communityvisibilitystate"`
	LastLogoffUnix int64  `json:"lastlogoff"`
}

type ownedGamesResponse struct {
	Response struct {
		GameCount *int           `json:"game_count"`
		Games     []rawOwnedGame `json:"games"`
	} `json:"response"`
}

type rawOwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	LastPlayedUnix  int64  `json:"rtime_last_played"`
}

type recentlyPlayedResponse struct {
	Response struct {
		Games []rawRecentGame `json:"games"`
	} `json:"response"`
}

type rawRecentGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
	LastPlayedUnix  int64  `json:"rtime_last_played"`
}

type resolveVanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
	} `json:"response"`
}
