package player

import "github.com/playrelay/playrelay/internal/media"

// DefaultContainer is the element id the player is mounted into.
const DefaultContainer = "player"

// Bootstrap is the configuration the server embeds in the player page and
// serves from the config endpoint.
type Bootstrap struct {
	URL        string   `json:"url"`
	Container  string   `json:"container"`
	Candidates []string `json:"candidates"`
	Stylesheet string   `json:"stylesheet,omitempty"`
	LicenseKey string   `json:"licenseKey,omitempty"`
	HomePath   string   `json:"homePath"`
	Setup      *Setup   `json:"setup,omitempty"`
}

// NewBootstrap fills unset fields with the package defaults.
func NewBootstrap(ref media.Reference, candidates []string, stylesheet, licenseKey string) Bootstrap {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return Bootstrap{
		URL:        ref.String(),
		Container:  DefaultContainer,
		Candidates: append([]string(nil), candidates...),
		Stylesheet: stylesheet,
		LicenseKey: licenseKey,
		HomePath:   "/",
	}
}

// Reference returns the media reference carried by b. An empty URL yields the
// zero Reference.
func (b Bootstrap) Reference() media.Reference {
	ref, err := media.NewReference(b.URL)
	if err != nil {
		return media.Reference{}
	}
	return ref
}
