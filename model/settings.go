package model

type Settings struct {
	SoundEnabled bool `bson:"sound_enabled" json:"sound_enabled"`
	DarkMode     bool `bson:"dark_mode" json:"dark_mode"`
}

func DefaultSettings() Settings {
	return Settings{SoundEnabled: true, DarkMode: true}
}
