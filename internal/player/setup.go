package player

import "github.com/playrelay/playrelay/internal/media"

// DefaultCandidates are the script locations of the player library, in the
// order they are tried.
var DefaultCandidates = []string{
	"https://cdn.jwplayer.com/libraries/KB5zFt7A.js",
	"https://cdn.jwplayer.com/libraries/jwplayer-8.min.js",
	"https://ssl.p.jwpcdn.com/player/v/8.31.1/jwplayer.js",
}

const DefaultStylesheet = "https://cdn.jwplayer.com/libraries/jwplayer-8.min.css"

// LibraryScriptPatterns match the src of every script the library may have
// injected, ours or its own.
var LibraryScriptPatterns = []string{"jwplayer", "jwpcdn", "jwplatform"}

type Skin struct {
	Name     string `json:"name"`
	Active   string `json:"active"`
	Inactive string `json:"inactive"`
}

type Related struct {
	DisplayMode string `json:"displayMode"`
}

// Setup is the configuration record handed to the library's setup call.
type Setup struct {
	File                   string         `json:"file"`
	Width                  string         `json:"width"`
	Height                 string         `json:"height"`
	AspectRatio            string         `json:"aspectratio"`
	Preload                string         `json:"preload"`
	Stretching             Stretching     `json:"stretching"`
	Skin                   Skin           `json:"skin"`
	Controls               bool           `json:"controls"`
	DisplayTitle           bool           `json:"displaytitle"`
	DisplayDescription     bool           `json:"displaydescription"`
	HLSHTML                bool           `json:"hlshtml"`
	Primary                string         `json:"primary"`
	RenderCaptionsNatively bool           `json:"renderCaptionsNatively"`
	Cast                   map[string]any `json:"cast"`
	Related                Related        `json:"related"`
}

// NewSetup builds the fixed player configuration for ref.
func NewSetup(ref media.Reference, stretching Stretching) Setup {
	if stretching == "" {
		stretching = DefaultStretching
	}
	return Setup{
		File:        ref.String(),
		Width:       "100%",
		Height:      "100%",
		AspectRatio: "16:9",
		Preload:     "auto",
		Stretching:  stretching,
		Skin: Skin{
			Name:     "custom",
			Active:   "#e50914",
			Inactive: "#ffffff",
		},
		Controls:               true,
		DisplayTitle:           false,
		DisplayDescription:     false,
		HLSHTML:                true,
		Primary:                "html5",
		RenderCaptionsNatively: false,
		Cast:                   map[string]any{},
		Related:                Related{DisplayMode: "none"},
	}
}
